package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/eringen/urbandash/nav"
)

func TestDefaultEntryCounts(t *testing.T) {
	m := Default()
	tests := []struct {
		page nav.PageID
		want int
	}{
		{nav.AirQuality, 4},
		{nav.MetroUsage, 2},
		{nav.About, 0},
	}
	for _, tt := range tests {
		if got := len(m.Entries(tt.page)); got != tt.want {
			t.Errorf("Entries(%v) = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestDefaultEntriesCarrySection(t *testing.T) {
	entries := Default().Entries(nav.AirQuality)
	want := []string{"CAH_PM25.png", "CA_PM25_animacion.gif", "CDH_PM25.png", "CD_PM25_animacion.gif"}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entry %d path = %q, want %q", i, e.Path, want[i])
		}
	}
	if entries[0].Section != "📍 Zona CA" || entries[3].Section != "📍 Zona CD" {
		t.Errorf("sections = %q, %q", entries[0].Section, entries[3].Section)
	}
}

func TestDefaultAboutText(t *testing.T) {
	p, ok := Default().Page(nav.About)
	if !ok {
		t.Fatal("about page missing")
	}
	if len(p.Sections) != 0 {
		t.Errorf("about sections = %d, want 0", len(p.Sections))
	}
	var body strings.Builder
	for _, tb := range p.Text {
		body.WriteString(tb.Body)
	}
	for _, want := range []string{"mailto:s.carvajal@udea.edu.co", "Sara Carvajal", "2025-06-11"} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("about text missing %q", want)
		}
	}
}

func TestHas(t *testing.T) {
	m := Default()
	if !m.Has("CDH_Metro_users.png") {
		t.Error("expected CDH_Metro_users.png to be registered")
	}
	if m.Has("secret.txt") {
		t.Error("unexpected asset secret.txt")
	}
	if got := len(m.Assets()); got != 6 {
		t.Errorf("Assets() = %d, want 6", got)
	}
}

func TestNewRejectsBadPaths(t *testing.T) {
	paths := []string{"", "/etc/passwd", "../up.png", "a/../../b.png", `dir\img.png`, "./img.png"}
	for _, p := range paths {
		_, err := New(
			Page{ID: nav.AirQuality, Sections: []Section{{Entries: []Entry{{Path: p}}}}},
			Page{ID: nav.MetroUsage},
			Page{ID: nav.About},
		)
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("New with path %q error = %v, want ErrInvalid", p, err)
		}
	}
}

func TestNewRejectsMissingAndDuplicatePages(t *testing.T) {
	if _, err := New(Page{ID: nav.AirQuality}, Page{ID: nav.About}); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing page error = %v, want ErrInvalid", err)
	}
	if _, err := New(Page{ID: nav.AirQuality}, Page{ID: nav.AirQuality}, Page{ID: nav.MetroUsage}, Page{ID: nav.About}); !errors.Is(err, ErrInvalid) {
		t.Errorf("duplicate page error = %v, want ErrInvalid", err)
	}
}

const sampleYAML = `
pages:
  - page: air-quality
    title: Aire
    sections:
      - title: Zona CA
        lead: Datos CA
        entries:
          - subsection: Mapa
            path: charts/CAH_PM25.png
            caption: Histórico
          - subsection: Animación
            path: charts/CA_PM25_animacion.gif
  - page: metro-usage
    title: Metro
  - page: about
    title: Acerca de
    text:
      - heading: Contacto
        body: "[correo](mailto:a@b.co)"
`

func TestLoadYAML(t *testing.T) {
	m, err := Load(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entries := m.Entries(nav.AirQuality)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[1].Path != "charts/CA_PM25_animacion.gif" || entries[1].Section != "Zona CA" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	about, _ := m.Page(nav.About)
	if len(about.Text) != 1 || about.Text[0].Heading != "Contacto" {
		t.Errorf("about text = %+v", about.Text)
	}
}

func TestLoadRejectsUnknownPage(t *testing.T) {
	_, err := Load(strings.NewReader("pages:\n  - page: weather\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load error = %v, want ErrInvalid", err)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("pages:\n  - page: about\n    colour: red\n"))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestManifestIsolatedFromCallers(t *testing.T) {
	sections := []Section{{
		Title:   "Zona CA",
		Entries: []Entry{{Path: "CAH_PM25.png", Caption: "Histórico"}},
	}}
	text := []TextBlock{{Heading: "Contacto", Body: "correo"}}
	m, err := New(
		Page{ID: nav.AirQuality, Sections: sections},
		Page{ID: nav.MetroUsage},
		Page{ID: nav.About, Text: text},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sections[0].Entries[0].Section != "" {
		t.Errorf("New wrote Section into the caller's entry: %q", sections[0].Entries[0].Section)
	}

	sections[0].Entries[0].Path = "changed.png"
	text[0].Body = "changed"
	got, _ := m.Page(nav.AirQuality)
	if got.Sections[0].Entries[0].Path != "CAH_PM25.png" {
		t.Errorf("caller write leaked into manifest: %q", got.Sections[0].Entries[0].Path)
	}

	got.Sections[0].Entries[0].Caption = "changed"
	got.Sections[0].Title = "changed"
	about, _ := m.Page(nav.About)
	about.Text[0].Heading = "changed"

	again, _ := m.Page(nav.AirQuality)
	if again.Sections[0].Title != "Zona CA" || again.Sections[0].Entries[0].Caption != "Histórico" {
		t.Errorf("Page result aliases manifest: %+v", again.Sections[0])
	}
	if about2, _ := m.Page(nav.About); about2.Text[0].Heading != "Contacto" || about2.Text[0].Body != "correo" {
		t.Errorf("Page text aliases manifest: %+v", about2.Text[0])
	}
	if !m.Has("CAH_PM25.png") || m.Has("changed.png") {
		t.Errorf("asset set changed after caller write")
	}
}
