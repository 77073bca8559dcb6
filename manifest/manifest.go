// Package manifest describes which charts and animations each dashboard page
// shows, in what order, and with which captions.
//
// A Manifest is built once at startup (from Default or a YAML file) and is
// never mutated afterwards.
package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/eringen/urbandash/nav"
)

// ErrInvalid is returned when a manifest fails validation.
var ErrInvalid = errors.New("manifest: invalid")

// Entry describes one displayed image or animation.
type Entry struct {
	Section     string `yaml:"-"`
	Subsection  string `yaml:"subsection"`
	Path        string `yaml:"path"` // relative to the asset root, slash-separated
	Caption     string `yaml:"caption"`
	Description string `yaml:"description"` // markdown
}

// Section groups entries rendered side by side in one row.
type Section struct {
	Title   string  `yaml:"title"`
	Lead    string  `yaml:"lead"`
	Entries []Entry `yaml:"entries"`
}

// TextBlock is literal page text. It is never checked against the filesystem.
type TextBlock struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"` // markdown
	Divider bool   `yaml:"divider"`
}

// Page is the static content of one dashboard page.
type Page struct {
	ID       nav.PageID  `yaml:"-"`
	Title    string      `yaml:"title"`
	Intro    string      `yaml:"intro"`
	Sections []Section   `yaml:"sections"`
	Text     []TextBlock `yaml:"text"`
}

// Manifest holds one Page per nav.PageID.
type Manifest struct {
	pages  map[nav.PageID]Page
	assets map[string]struct{}
}

// New builds a manifest from pages and validates it.
func New(pages ...Page) (*Manifest, error) {
	m := &Manifest{
		pages:  make(map[nav.PageID]Page, len(pages)),
		assets: make(map[string]struct{}),
	}
	for _, p := range pages {
		if !p.ID.Valid() {
			return nil, fmt.Errorf("%w: unknown page %v", ErrInvalid, p.ID)
		}
		if _, dup := m.pages[p.ID]; dup {
			return nil, fmt.Errorf("%w: page %s declared twice", ErrInvalid, p.ID)
		}
		p = clonePage(p)
		for i := range p.Sections {
			for j := range p.Sections[i].Entries {
				p.Sections[i].Entries[j].Section = p.Sections[i].Title
			}
		}
		m.pages[p.ID] = p
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	for _, p := range m.pages {
		for _, s := range p.Sections {
			for _, e := range s.Entries {
				m.assets[e.Path] = struct{}{}
			}
		}
	}
	return m, nil
}

// Validate checks that every page is declared and every asset path stays
// inside the asset root.
func (m *Manifest) Validate() error {
	for _, id := range nav.Pages() {
		if _, ok := m.pages[id]; !ok {
			return fmt.Errorf("%w: page %s missing", ErrInvalid, id)
		}
	}
	for _, id := range nav.Pages() {
		for _, s := range m.pages[id].Sections {
			if len(s.Entries) == 0 {
				return fmt.Errorf("%w: page %s section %q has no entries", ErrInvalid, id, s.Title)
			}
			for _, e := range s.Entries {
				if err := validatePath(e.Path); err != nil {
					return fmt.Errorf("%w: page %s: %v", ErrInvalid, id, err)
				}
			}
		}
	}
	return nil
}

func validatePath(p string) error {
	switch {
	case strings.TrimSpace(p) == "":
		return errors.New("empty asset path")
	case strings.Contains(p, `\`):
		return fmt.Errorf("asset path %q must use forward slashes", p)
	case path.IsAbs(p):
		return fmt.Errorf("asset path %q must be relative", p)
	case path.Clean(p) != p:
		return fmt.Errorf("asset path %q is not clean", p)
	case p == ".." || strings.HasPrefix(p, "../"):
		return fmt.Errorf("asset path %q escapes the asset root", p)
	}
	return nil
}

// Page returns the page declared for id.
func (m *Manifest) Page(id nav.PageID) (Page, bool) {
	p, ok := m.pages[id]
	if !ok {
		return Page{}, false
	}
	return clonePage(p), true
}

// clonePage copies the slices of p so the manifest never shares backing
// arrays with callers.
func clonePage(p Page) Page {
	if p.Sections != nil {
		sections := make([]Section, len(p.Sections))
		for i, sec := range p.Sections {
			sec.Entries = append([]Entry(nil), sec.Entries...)
			sections[i] = sec
		}
		p.Sections = sections
	}
	p.Text = append([]TextBlock(nil), p.Text...)
	return p
}

// Entries returns the page's entries in declaration order.
func (m *Manifest) Entries(id nav.PageID) []Entry {
	p, ok := m.pages[id]
	if !ok {
		return nil
	}
	var out []Entry
	for _, s := range p.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Has reports whether rel is a registered asset path.
func (m *Manifest) Has(rel string) bool {
	_, ok := m.assets[rel]
	return ok
}

// Assets returns every registered asset path in page declaration order.
func (m *Manifest) Assets() []string {
	var out []string
	for _, id := range nav.Pages() {
		for _, e := range m.Entries(id) {
			out = append(out, e.Path)
		}
	}
	return out
}
