package views

import (
	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
)

// SiteInfo holds site-wide settings every template reads.
type SiteInfo struct {
	Name   string // shown in <title>
	URL    string // canonical base URL
	Footer string // sidebar credit line
	Lang   string // <html lang>
}

// PageData is the view model of a dashboard page.
type PageData struct {
	Site SiteInfo
	Nav  []nav.Item
	Plan planner.Plan
}
