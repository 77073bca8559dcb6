// Package urbandash serves a navigable dashboard of pre-generated air-quality
// and Metro-usage charts, built with Go, Echo, and templ.
//
// Each request resolves the selected page, plans it against the asset root
// (every chart is checked on disk, missing ones become inline warnings) and
// renders the plan through the ViewFuncs templates.
package urbandash

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/urbandash/manifest"
	"github.com/eringen/urbandash/planner"
	"github.com/eringen/urbandash/stats"
	"github.com/eringen/urbandash/views"
)

// ViewFuncs holds the templ components the server renders. Any nil field
// falls back to the default in package views.
type ViewFuncs struct {
	Page        func(data views.PageData) templ.Component
	Content     func(plan planner.Plan) templ.Component
	NotFound    func(site views.SiteInfo) templ.Component
	ClientError func(site views.SiteInfo, code int) templ.Component
	ServerError func(site views.SiteInfo) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Page == nil {
		v.Page = views.Page
	}
	if v.Content == nil {
		v.Content = views.Content
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ClientError == nil {
		v.ClientError = views.ClientError
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central urbandash application. It wires together the manifest,
// planner, thumbnail cache, optional stats store, handlers and middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Logger   *zap.Logger
	Manifest *manifest.Manifest
	Planner  *planner.Planner
	Thumbs   *ThumbCache
	Stats    *stats.Store
	Views    ViewFuncs

	thumbLimiter *RateLimiter
	stopCleanup  func()
	customRoutes []func(*App)
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	a.Views.setDefaults()
	return a
}

// Init loads the manifest, opens the stats store and registers middleware
// and routes. Run calls it; tests call it directly and use a.Echo as an
// http.Handler.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.Logger == nil {
		logger, err := NewLogger(a.Config.LogLevel, a.Config.LogFormat)
		if err != nil {
			return fmt.Errorf("urbandash: init logger: %w", err)
		}
		a.Logger = logger
	}

	m := manifest.Default()
	if a.Config.ManifestPath != "" {
		loaded, err := manifest.LoadFile(a.Config.ManifestPath)
		if err != nil {
			return fmt.Errorf("urbandash: load manifest: %w", err)
		}
		m = loaded
	}
	a.Manifest = m
	a.Planner = planner.New(m, a.Config.AssetRoot)
	a.Thumbs = NewThumbCache(a.Config.ThumbCacheTTL, a.Config.ThumbMaxWidth)

	if a.Config.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("urbandash: generate session secret: %w", err)
		}
		a.Config.SessionSecret = secret
		a.Logger.Info("no session secret configured; page selection will not survive restarts")
	}

	if a.Config.StatsEnabled {
		store, err := stats.NewStore(a.Config.StatsDatabasePath)
		if err != nil {
			return fmt.Errorf("urbandash: init stats: %w", err)
		}
		a.Stats = store
		a.stopCleanup = store.StartCleanupScheduler(a.Config.StatsRetentionDays, 24*time.Hour, func(err error) {
			a.Logger.Warn("stats cleanup failed", zap.Error(err))
		})
	}

	// Background workers start only once nothing above can fail.
	a.thumbLimiter = NewRateLimiter(60, time.Minute)
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Run initializes the app and serves until ctx is canceled, then shuts the
// server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("starting server",
		zap.String("addr", a.Config.Addr),
		zap.String("asset_root", a.Config.AssetRoot),
		zap.Bool("stats", a.Stats != nil),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})
	if a.Config.WatchAssets {
		g.Go(func() error {
			return a.watchAssets(ctx)
		})
	}
	return g.Wait()
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.GET("/favicon.ico", handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)

	e.GET("/assets/*", a.handleAsset)

	e.GET("/api/pages/:page/", a.handlePlanJSON)
	e.GET("/api/stats/", a.handleStats)

	e.GET("/", a.handleIndex)
	e.GET("/:page/", a.handlePage)
}

// Close releases the stats store and background workers.
func (a *App) Close() error {
	var err error
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.thumbLimiter != nil {
		a.thumbLimiter.Stop()
	}
	if a.Stats != nil {
		err = multierr.Append(err, a.Stats.Close())
	}
	if a.Logger != nil {
		// Sync fails on stdout/stderr on some platforms; ignore it.
		_ = a.Logger.Sync()
	}
	return err
}

func (a *App) siteInfo() views.SiteInfo {
	return views.SiteInfo{
		Name:   a.Config.Name,
		URL:    a.Config.URL,
		Footer: a.Config.Footer,
		Lang:   "es",
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
