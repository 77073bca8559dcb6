package views

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"

	"github.com/eringen/urbandash/manifest"
	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func planFor(t *testing.T, page nav.PageID, present ...string) planner.Plan {
	t.Helper()
	root := t.TempDir()
	for _, name := range present {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	plan, err := planner.New(manifest.Default(), root).Plan(page)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return plan
}

func TestPageRendersPresentAndMissing(t *testing.T) {
	plan := planFor(t, nav.AirQuality, "CAH_PM25.png")
	doc := render(t, Page(PageData{
		Site: SiteInfo{Name: "Dashboard de Datos Urbanos", Footer: "Desarrollado en Go"},
		Nav:  nav.Build(nav.AirQuality),
		Plan: plan,
	}))

	imgs := doc.Find("figure img")
	if imgs.Length() != 1 {
		t.Fatalf("images = %d, want 1", imgs.Length())
	}
	if src, _ := imgs.Attr("src"); src != "/assets/CAH_PM25.png" {
		t.Errorf("img src = %q", src)
	}
	warnings := doc.Find(".warning")
	if warnings.Length() != 3 {
		t.Fatalf("warnings = %d, want 3", warnings.Length())
	}
	if got := warnings.First().Text(); !strings.Contains(got, "GIF no encontrado") {
		t.Errorf("first warning = %q, want GIF wording", got)
	}
	if got := doc.Find("section").Length(); got != 2 {
		t.Errorf("sections = %d, want 2", got)
	}
	if got := doc.Find("section .row.cols-2").Length(); got != 2 {
		t.Errorf("two-column rows = %d, want 2", got)
	}
	if got := doc.Find("section#zona-ca").Length(); got != 1 {
		t.Errorf("zona-ca anchor sections = %d, want 1", got)
	}
	if got := doc.Find("figcaption").Text(); got != "Concentración Histórica de PM2.5 en la Zona CA" {
		t.Errorf("caption = %q", got)
	}
	if !strings.Contains(doc.Find("title").Text(), "Dashboard de Datos Urbanos") {
		t.Errorf("title = %q", doc.Find("title").Text())
	}
}

func TestSidebarMarksSelection(t *testing.T) {
	doc := render(t, Sidebar(SiteInfo{Footer: "Desarrollado en Go"}, nav.Build(nav.MetroUsage)))
	radios := doc.Find(`input[type="radio"][name="section"]`)
	if radios.Length() != 3 {
		t.Fatalf("radios = %d, want 3", radios.Length())
	}
	checked := doc.Find(`input[checked]`)
	if v, _ := checked.Attr("value"); v != "🚇 Uso del Metro" {
		t.Errorf("checked value = %q", v)
	}
	if got := doc.Find(".credit").Text(); got != "Desarrollado en Go" {
		t.Errorf("credit = %q", got)
	}
}

func TestAboutRendersTextWithoutAssets(t *testing.T) {
	doc := render(t, Content(planFor(t, nav.About)))
	if got := doc.Find("img").Length(); got != 0 {
		t.Errorf("about images = %d, want 0", got)
	}
	if got := doc.Find(".warning").Length(); got != 0 {
		t.Errorf("about warnings = %d, want 0", got)
	}
	if got := doc.Find(`a[href="mailto:s.carvajal@udea.edu.co"]`).Length(); got != 1 {
		t.Errorf("contact links = %d, want 1", got)
	}
	if got := doc.Find(".text-block li").Length(); got < 4 {
		t.Errorf("list items = %d, want at least 4", got)
	}
}

func TestMarkdownSanitizes(t *testing.T) {
	doc := render(t, Markdown("**ok** <script>alert(1)</script> [x](javascript:alert(1))"))
	if doc.Find("script").Length() != 0 {
		t.Error("script tag survived sanitizing")
	}
	if doc.Find("strong").Text() != "ok" {
		t.Errorf("strong = %q", doc.Find("strong").Text())
	}
	if href, ok := doc.Find("a").Attr("href"); ok && strings.HasPrefix(href, "javascript:") {
		t.Errorf("unsafe href kept: %q", href)
	}
}

func TestContentEscapesText(t *testing.T) {
	plan := planner.Plan{Page: nav.About, Title: `<b>x</b>`}
	var buf bytes.Buffer
	if err := Content(plan).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<b>x</b>") {
		t.Errorf("title not escaped: %s", buf.String())
	}
}

func TestHelpers(t *testing.T) {
	if got := AssetURL("charts/Zona CA.png"); got != "/assets/charts/Zona%20CA.png" {
		t.Errorf("AssetURL = %q", got)
	}
	if got := SectionAnchor("Zona CA"); got != "zona-ca" {
		t.Errorf("SectionAnchor = %q", got)
	}
	if got := ColumnClass(0); got != "row cols-1" {
		t.Errorf("ColumnClass(0) = %q", got)
	}
	m := planner.Missing{AttemptedPath: "images/x.png", Kind: planner.Image}
	if got := MissingMessage(m); got != "Imagen no encontrada: images/x.png" {
		t.Errorf("MissingMessage = %q", got)
	}
}

func TestNotFound(t *testing.T) {
	doc := render(t, NotFound(SiteInfo{Name: "Dash"}))
	if got := doc.Find("h1").Last().Text(); got != "Página no encontrada" {
		t.Errorf("h1 = %q", got)
	}
	if doc.Find("input[checked]").Length() != 0 {
		t.Error("no page should be selected on the 404 page")
	}
}

func TestClientError(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{400, "Selección no válida"},
		{429, "Demasiadas solicitudes"},
		{405, "Solicitud no válida"},
	}
	for _, tt := range tests {
		doc := render(t, ClientError(SiteInfo{Name: "Dash"}, tt.code))
		if got := doc.Find("article h1").Text(); got != tt.want {
			t.Errorf("ClientError(%d) h1 = %q, want %q", tt.code, got, tt.want)
		}
	}
}
