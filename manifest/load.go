package manifest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/urbandash/nav"
)

type fileManifest struct {
	Pages []filePage `yaml:"pages"`
}

type filePage struct {
	Page `yaml:",inline"`
	Slug string `yaml:"page"`
}

// Load parses a YAML manifest. Pages are keyed by their URL slug:
//
//	pages:
//	  - page: metro-usage
//	    title: Uso del Metro
//	    sections:
//	      - entries:
//	          - subsection: Ciclo diurno
//	            path: CDH_Metro_users.png
func Load(r io.Reader) (*Manifest, error) {
	var fm fileManifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	pages := make([]Page, 0, len(fm.Pages))
	for _, fp := range fm.Pages {
		id, err := nav.FromSlug(fp.Slug)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		p := fp.Page
		p.ID = id
		pages = append(pages, p)
	}
	return New(pages...)
}

// LoadFile reads a YAML manifest from path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}
