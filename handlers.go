package urbandash

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/urbandash/nav"
	"github.com/eringen/urbandash/planner"
	"github.com/eringen/urbandash/views"
)

// handleIndex applies a sidebar selection, or sends the visitor to the page
// they last looked at.
func (a *App) handleIndex(c echo.Context) error {
	if c.QueryParams().Has("section") {
		id, err := nav.Resolve(c.QueryParam("section"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid section").SetInternal(err)
		}
		if err := rememberPage(c, id); err != nil {
			a.Logger.Warn("save session", zap.Error(err))
		}
		return c.Redirect(http.StatusSeeOther, id.Href())
	}
	id, ok := selectedPage(c)
	if !ok {
		id = nav.Default()
	}
	return c.Redirect(http.StatusSeeOther, id.Href())
}

func (a *App) handlePage(c echo.Context) error {
	id, err := nav.FromSlug(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	plan, err := a.Planner.Plan(id)
	if err != nil {
		return err
	}
	a.observe(c, plan)

	if err := rememberPage(c, id); err != nil {
		a.Logger.Warn("save session", zap.Error(err))
	}
	if isPartial(c) {
		return Render(c, a.Views.Content(plan))
	}
	return Render(c, a.Views.Page(views.PageData{
		Site: a.siteInfo(),
		Nav:  nav.Build(id),
		Plan: plan,
	}))
}

// observe logs missing assets and records stats. Stats failures never fail
// the request.
func (a *App) observe(c echo.Context, plan planner.Plan) {
	missing := plan.Missing()
	for _, m := range missing {
		a.Logger.Warn("asset missing",
			zap.Stringer("page", plan.Page),
			zap.String("path", m.AttemptedPath),
			zap.Stringer("kind", m.Kind),
		)
	}
	if a.Stats == nil {
		return
	}
	ctx := c.Request().Context()
	now := time.Now().UTC()
	if err := a.Stats.RecordView(ctx, plan.Page.String(), now); err != nil {
		a.Logger.Warn("record view", zap.Error(err))
	}
	for _, m := range missing {
		if err := a.Stats.RecordMissing(ctx, plan.Page.String(), m.RelPath, now); err != nil {
			a.Logger.Warn("record missing asset", zap.Error(err))
		}
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func handleFavicon(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/public/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound && !isAPI(c) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.siteInfo()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 400 && code < 500 && !isAPI(c) {
		_ = RenderStatus(c, code, a.Views.ClientError(a.siteInfo(), code))
		return
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("uri", c.Request().RequestURI),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
		if !isAPI(c) {
			_ = RenderStatus(c, code, a.Views.ServerError(a.siteInfo()))
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
