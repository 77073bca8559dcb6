// Package planner turns a selected page into an ordered list of presentation
// blocks, checking every manifest asset against the filesystem.
//
// Planning is synchronous and uncached: assets may be added or removed between
// requests, so each call stats every file again. A missing file never fails
// the plan; it degrades to a Missing block in the same position.
package planner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eringen/urbandash/manifest"
	"github.com/eringen/urbandash/nav"
)

// ErrUnknownPage is returned when the manifest has no page for the id.
var ErrUnknownPage = errors.New("planner: unknown page")

// Kind tells images and animations apart.
type Kind int

const (
	Image Kind = iota
	Animation
)

func (k Kind) String() string {
	if k == Animation {
		return "animation"
	}
	return "image"
}

// KindOf classifies an asset path by extension.
func KindOf(rel string) Kind {
	if strings.EqualFold(path.Ext(rel), ".gif") {
		return Animation
	}
	return Image
}

// Placement locates a block on screen. Blocks sharing a Row are column-mates.
type Placement struct {
	Row        int
	Column     int
	Columns    int
	Section    string
	Lead       string
	Subsection string
}

// Block is a Present or a Missing value.
type Block interface {
	Place() Placement
	isBlock()
}

// Present is an asset found on disk.
type Present struct {
	Placement
	Path        string // filepath.Join(root, RelPath)
	RelPath     string
	Caption     string
	Description string
	Kind        Kind
}

// Missing is an asset that could not be found; rendered as an inline warning.
type Missing struct {
	Placement
	AttemptedPath string
	RelPath       string
	Kind          Kind
}

func (b Present) Place() Placement { return b.Placement }
func (b Missing) Place() Placement { return b.Placement }
func (Present) isBlock() {}
func (Missing) isBlock() {}

// Plan is everything needed to render one page.
type Plan struct {
	Page   nav.PageID
	Title  string
	Intro  string
	Blocks []Block
	Text   []manifest.TextBlock
}

// Rows groups blocks by row, preserving order.
func (p Plan) Rows() [][]Block {
	var rows [][]Block
	for _, b := range p.Blocks {
		r := b.Place().Row
		for len(rows) <= r {
			rows = append(rows, nil)
		}
		rows[r] = append(rows[r], b)
	}
	return rows
}

// Missing returns the missing blocks in order.
func (p Plan) Missing() []Missing {
	var out []Missing
	for _, b := range p.Blocks {
		if m, ok := b.(Missing); ok {
			out = append(out, m)
		}
	}
	return out
}

// Planner plans pages of one manifest against one asset root.
type Planner struct {
	manifest *manifest.Manifest
	root     string
	stat     func(string) (fs.FileInfo, error)
}

// New returns a Planner resolving assets under root.
func New(m *manifest.Manifest, root string) *Planner {
	return &Planner{manifest: m, root: root, stat: os.Stat}
}

// Root returns the asset root.
func (p *Planner) Root() string {
	return p.root
}

// PlanLabel resolves a sidebar label and plans its page.
func (p *Planner) PlanLabel(label string) (Plan, error) {
	id, err := nav.Resolve(label)
	if err != nil {
		return Plan{}, err
	}
	return p.Plan(id)
}

// Plan builds the presentation blocks for page.
func (p *Planner) Plan(page nav.PageID) (Plan, error) {
	pg, ok := p.manifest.Page(page)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %v", ErrUnknownPage, page)
	}
	plan := Plan{
		Page:  page,
		Title: pg.Title,
		Intro: pg.Intro,
		Text:  pg.Text,
	}
	for row, s := range pg.Sections {
		for col, e := range s.Entries {
			place := Placement{
				Row:        row,
				Column:     col,
				Columns:    len(s.Entries),
				Section:    s.Title,
				Lead:       s.Lead,
				Subsection: e.Subsection,
			}
			plan.Blocks = append(plan.Blocks, p.resolve(place, e))
		}
	}
	return plan, nil
}

func (p *Planner) resolve(place Placement, e manifest.Entry) Block {
	full := filepath.Join(p.root, filepath.FromSlash(e.Path))
	kind := KindOf(e.Path)
	if !p.exists(full) {
		return Missing{
			Placement:     place,
			AttemptedPath: full,
			RelPath:       e.Path,
			Kind:          kind,
		}
	}
	return Present{
		Placement:   place,
		Path:        full,
		RelPath:     e.Path,
		Caption:     e.Caption,
		Description: e.Description,
		Kind:        kind,
	}
}

// exists treats directories and unreadable entries as missing.
func (p *Planner) exists(full string) bool {
	info, err := p.stat(full)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
