package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/gosimple/slug"

	"github.com/eringen/urbandash/planner"
)

// AssetURL maps a manifest path to its public URL.
func AssetURL(rel string) string {
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/assets/" + strings.Join(parts, "/")
}

// SectionAnchor returns the fragment id for a section title. Pictographs
// such as the location pin are dropped before slugging.
func SectionAnchor(title string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Variation_Selector, r) {
			return -1
		}
		return r
	}, title)
	return slug.MakeLang(clean, "es")
}

// MissingMessage is the inline warning shown in place of an absent asset.
func MissingMessage(m planner.Missing) string {
	if m.Kind == planner.Animation {
		return "GIF no encontrado: " + m.AttemptedPath
	}
	return "Imagen no encontrada: " + m.AttemptedPath
}

// ColumnClass returns the CSS class of a row with n columns.
func ColumnClass(n int) string {
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("row cols-%d", n)
}

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// component renders a nested component.
func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}
