// Package nav maps sidebar selections to dashboard pages.
package nav

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is returned for labels or slugs outside the closed page set.
var ErrInvalidSelection = errors.New("nav: invalid selection")

// PageID identifies one dashboard page.
type PageID int

const (
	AirQuality PageID = iota
	MetroUsage
	About
)

type pageInfo struct {
	id    PageID
	slug  string
	label string
}

// pages is declaration order: sidebar order, sitemap order.
var pages = []pageInfo{
	{id: AirQuality, slug: "air-quality", label: "🌬️ Calidad del Aire (PM2.5)"},
	{id: MetroUsage, slug: "metro-usage", label: "🚇 Uso del Metro"},
	{id: About, slug: "about", label: "ℹ️ Acerca de"},
}

// Pages returns every page in sidebar order.
func Pages() []PageID {
	out := make([]PageID, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.id)
	}
	return out
}

// Default is the page shown before the user picks one.
func Default() PageID {
	return AirQuality
}

// Resolve returns the page for a sidebar label.
func Resolve(label string) (PageID, error) {
	for _, p := range pages {
		if p.label == label {
			return p.id, nil
		}
	}
	return 0, fmt.Errorf("%w: label %q", ErrInvalidSelection, label)
}

// FromSlug returns the page for a URL slug.
func FromSlug(slug string) (PageID, error) {
	for _, p := range pages {
		if p.slug == slug {
			return p.id, nil
		}
	}
	return 0, fmt.Errorf("%w: slug %q", ErrInvalidSelection, slug)
}

// Valid reports whether p is one of the known pages.
func (p PageID) Valid() bool {
	return p >= AirQuality && p <= About
}

// String returns the URL slug.
func (p PageID) String() string {
	if !p.Valid() {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pages[p].slug
}

// Label returns the sidebar label.
func (p PageID) Label() string {
	if !p.Valid() {
		return ""
	}
	return pages[p].label
}

// Href returns the canonical path of the page.
func (p PageID) Href() string {
	return "/" + p.String() + "/"
}

// Item is a sidebar entry view model.
type Item struct {
	Page   PageID
	Label  string
	Href   string
	Active bool
}

// Build renders sidebar items with the current page marked active.
func Build(current PageID) []Item {
	items := make([]Item, 0, len(pages))
	for _, p := range pages {
		items = append(items, Item{
			Page:   p.id,
			Label:  p.label,
			Href:   p.id.Href(),
			Active: p.id == current,
		})
	}
	return items
}
