package views

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
)

// Layout wraps content in the document shell with the navigation sidebar.
func Layout(site SiteInfo, title string, items []nav.Item, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		lang := site.Lang
		if lang == "" {
			lang = "es"
		}
		h.raw(`<!doctype html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if title != "" {
			h.text(title + " · ")
		}
		h.text(site.Name)
		h.raw(`</title><link rel="icon" href="/public/favicon.svg" type="image/svg+xml"><link rel="stylesheet" href="/public/dashboard.css"></head><body><div class="shell">`)
		h.component(Sidebar(site, items))
		h.raw(`<main id="content">`)
		h.component(content)
		h.raw(`</main></div></body></html>`)
		return h.err
	})
}

// Sidebar renders the page selector. Radio changes submit the form so the
// selection works like a single-choice control; the button covers no-JS.
func Sidebar(site SiteInfo, items []nav.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<aside class="sidebar"><h1>🏙️ Navegación</h1><hr/>`)
		h.raw(`<form method="get" action="/" class="selector"><fieldset><legend>Selecciona una sección:</legend>`)
		for i, it := range items {
			id := "section-" + strconv.Itoa(i)
			h.raw(`<label`)
			h.attr("for", id)
			if it.Active {
				h.raw(` class="active"`)
			}
			h.raw(`><input type="radio" name="section" onchange="this.form.submit()"`)
			h.attr("id", id)
			h.attr("value", it.Label)
			if it.Active {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(it.Label)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset><noscript><button type="submit">Ir</button></noscript></form><hr/>`)
		if site.Footer != "" {
			h.raw(`<p class="credit">`)
			h.text(site.Footer)
			h.raw(`</p>`)
		}
		h.raw(`</aside>`)
		return h.err
	})
}

// Page renders a full dashboard page.
func Page(data PageData) templ.Component {
	return Layout(data.Site, data.Plan.Title, data.Nav, Content(data.Plan))
}

// Content renders the main column of a plan; served alone for partial requests.
func Content(plan planner.Plan) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<article`)
		h.attr("class", "page page-"+plan.Page.String())
		h.raw(`><h1>`)
		h.text(plan.Title)
		h.raw(`</h1>`)
		if plan.Intro != "" {
			h.raw(`<p class="intro">`)
			h.text(plan.Intro)
			h.raw(`</p>`)
		}
		for _, row := range plan.Rows() {
			if len(row) == 0 {
				continue
			}
			place := row[0].Place()
			h.raw(`<hr/><section`)
			if place.Section != "" {
				h.attr("id", SectionAnchor(place.Section))
			}
			h.raw(`>`)
			if place.Section != "" {
				h.raw(`<h2>`)
				h.text(place.Section)
				h.raw(`</h2>`)
			}
			if place.Lead != "" {
				h.raw(`<h3>`)
				h.text(place.Lead)
				h.raw(`</h3>`)
			}
			h.raw(`<div`)
			h.attr("class", ColumnClass(place.Columns))
			h.raw(`>`)
			for _, b := range row {
				h.component(Block(b))
			}
			h.raw(`</div></section>`)
		}
		for _, tb := range plan.Text {
			if tb.Divider {
				h.raw(`<hr/>`)
			}
			h.raw(`<div class="text-block">`)
			if tb.Heading != "" {
				h.raw(`<h3>`)
				h.text(tb.Heading)
				h.raw(`</h3>`)
			}
			h.component(Markdown(tb.Body))
			h.raw(`</div>`)
		}
		h.raw(`</article>`)
		return h.err
	})
}

// Block renders one column: the asset with its caption and description, or
// the warning that replaces it.
func Block(b planner.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		place := b.Place()
		h.raw(`<div class="col">`)
		if place.Subsection != "" {
			h.raw(`<h4>`)
			h.text(place.Subsection)
			h.raw(`</h4>`)
		}
		switch v := b.(type) {
		case planner.Present:
			h.raw(`<figure`)
			h.attr("class", "asset asset-"+v.Kind.String())
			h.raw(`><img`)
			h.attr("src", AssetURL(v.RelPath))
			h.attr("alt", v.Caption)
			h.raw(` loading="lazy" decoding="async"><figcaption>`)
			h.text(v.Caption)
			h.raw(`</figcaption></figure>`)
			if v.Description != "" {
				h.raw(`<div class="description">`)
				h.component(Markdown(v.Description))
				h.raw(`</div>`)
			}
		case planner.Missing:
			h.raw(`<div class="warning" role="alert">⚠️ `)
			h.text(MissingMessage(v))
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// NotFound renders the 404 page.
func NotFound(site SiteInfo) templ.Component {
	return Layout(site, "No encontrado", nav.Build(-1), message(
		"Página no encontrada",
		"La sección solicitada no existe. Usa la barra lateral para elegir una sección.",
	))
}

// ClientError renders the page for 4xx responses other than 404, such as a
// selection that is not in the sidebar.
func ClientError(site SiteInfo, code int) templ.Component {
	switch code {
	case http.StatusBadRequest:
		return Layout(site, "Selección no válida", nav.Build(-1), message(
			"Selección no válida",
			"La sección elegida no existe. Usa la barra lateral para elegir una sección.",
		))
	case http.StatusTooManyRequests:
		return Layout(site, "Demasiadas solicitudes", nav.Build(-1), message(
			"Demasiadas solicitudes",
			"Espera unos momentos antes de volver a intentarlo.",
		))
	}
	return Layout(site, "Error", nav.Build(-1), message(
		"Solicitud no válida",
		"No se pudo procesar la solicitud.",
	))
}

// ServerError renders the 5xx page.
func ServerError(site SiteInfo) templ.Component {
	return Layout(site, "Error", nav.Build(-1), message(
		"Error del servidor",
		"Ocurrió un error inesperado. Intenta de nuevo en unos momentos.",
	))
}

func message(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<article class="page page-message"><h1>`)
		h.text(title)
		h.raw(`</h1><p>`)
		h.text(body)
		h.raw(`</p><p><a href="/">Volver al inicio</a></p></article>`)
		return h.err
	})
}
