package urbandash

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/urbandash/manifest"
	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
	"github.com/eringen/urbandash/views"
)

// statsWindow is the period covered by GET /api/stats/.
const statsWindow = 30 * 24 * time.Hour

// PlanResponse is the JSON form of a planner.Plan.
type PlanResponse struct {
	Page   string          `json:"page"`
	Label  string          `json:"label"`
	Title  string          `json:"title"`
	Intro  string          `json:"intro,omitempty"`
	Blocks []BlockResponse `json:"blocks"`
	Text   []TextResponse  `json:"text,omitempty"`
}

// BlockResponse is one presentation block. Status is "present" or "missing".
type BlockResponse struct {
	Status        string `json:"status"`
	Kind          string `json:"kind"`
	Row           int    `json:"row"`
	Column        int    `json:"column"`
	Columns       int    `json:"columns"`
	Section       string `json:"section,omitempty"`
	Subsection    string `json:"subsection,omitempty"`
	Path          string `json:"path"`
	URL           string `json:"url,omitempty"`
	Caption       string `json:"caption,omitempty"`
	Description   string `json:"description,omitempty"`
	AttemptedPath string `json:"attempted_path,omitempty"`
}

// TextResponse is one static text block.
type TextResponse struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
	Divider bool   `json:"divider,omitempty"`
}

// NewPlanResponse converts a plan for the JSON API.
func NewPlanResponse(plan planner.Plan) PlanResponse {
	resp := PlanResponse{
		Page:   plan.Page.String(),
		Label:  plan.Page.Label(),
		Title:  plan.Title,
		Intro:  plan.Intro,
		Blocks: make([]BlockResponse, 0, len(plan.Blocks)),
	}
	for _, b := range plan.Blocks {
		resp.Blocks = append(resp.Blocks, newBlockResponse(b))
	}
	for _, t := range plan.Text {
		resp.Text = append(resp.Text, newTextResponse(t))
	}
	return resp
}

func newBlockResponse(b planner.Block) BlockResponse {
	p := b.Place()
	out := BlockResponse{
		Row:        p.Row,
		Column:     p.Column,
		Columns:    p.Columns,
		Section:    p.Section,
		Subsection: p.Subsection,
	}
	switch v := b.(type) {
	case planner.Present:
		out.Status = "present"
		out.Kind = v.Kind.String()
		out.Path = v.RelPath
		out.URL = views.AssetURL(v.RelPath)
		out.Caption = v.Caption
		out.Description = v.Description
	case planner.Missing:
		out.Status = "missing"
		out.Kind = v.Kind.String()
		out.Path = v.RelPath
		out.AttemptedPath = v.AttemptedPath
	}
	return out
}

func newTextResponse(t manifest.TextBlock) TextResponse {
	return TextResponse{Heading: t.Heading, Body: t.Body, Divider: t.Divider}
}

func (a *App) handlePlanJSON(c echo.Context) error {
	id, err := nav.FromSlug(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown page").SetInternal(err)
	}
	plan, err := a.Planner.Plan(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewPlanResponse(plan))
}

func (a *App) handleStats(c echo.Context) error {
	if a.Stats == nil {
		return echo.NewHTTPError(http.StatusNotFound, "stats disabled")
	}
	summary, err := a.Stats.Summary(c.Request().Context(), time.Now().UTC().Add(-statsWindow))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
