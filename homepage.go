// Package homepage serves a personal academic homepage built with Go, Echo,
// and templ. Publications, projects, awards and games are read from JSON
// fixtures and rendered on the server; project cards and game cards are
// decorated with GitHub star counts and Bilibili view counts fetched in the
// background.
//
// Users provide the templ components via the ViewFuncs struct, and homepage
// handles loading, enrichment, preferences, middleware, and routing.
package homepage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. Users own every template; the framework owns the data.
type ViewFuncs struct {
	Home           func(page HomePage) templ.Component
	Section        func(page SectionPage) templ.Component
	SectionPartial func(page SectionPage) templ.Component
	NotFound       func(page Page) templ.Component
	ServerError    func(page Page) templ.Component
}

// App is the central homepage application. It wires together the content
// cache, counter enrichment, handlers, middleware, and user templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Content  *ContentCache
	Counters *Enricher
	Views    ViewFuncs

	contentFS       fs.FS
	httpClient      *http.Client
	starSource      StarSource
	viewSource      ViewSource
	githubLimiter   *UpstreamLimiter
	bilibiliLimiter *UpstreamLimiter
	customRoutes    []func(*App)
	stopRefresh     func()
	initialized     bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(cfg.logLevel())

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, loads persisted counters, and registers middleware
// and routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if a.Config.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("homepage: generate session secret: %w", err)
		}
		a.Config.SessionSecret = secret
		a.Echo.Logger.Warn("homepage: session_secret not set, preferences reset on restart")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("homepage: init store: %w", err)
	}
	a.Store = store

	if a.contentFS == nil {
		a.contentFS = os.DirFS(a.Config.ContentDir)
	}
	a.Content = NewContentCache(a.contentFS, a.Config.ContentTTL, a.Echo.Logger)

	a.Counters = a.newEnricher()
	if err := a.Counters.Load(); err != nil {
		a.Echo.Logger.Warnf("homepage: %v", err)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// newEnricher builds the counter enricher and its upstream clients from
// the configuration, keeping any source set through options.
func (a *App) newEnricher() *Enricher {
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.Config.APITimeout}
	}
	userAgent := a.Config.Name + " (+" + a.Config.URL + ")"
	if a.starSource == nil {
		a.starSource = &GitHubClient{Client: a.httpClient, Token: a.Config.GitHubToken, UserAgent: userAgent}
	}
	if a.viewSource == nil {
		a.viewSource = &BilibiliClient{Client: a.httpClient, UserAgent: userAgent}
	}
	if a.githubLimiter == nil && a.Config.GitHubPerHour > 0 {
		a.githubLimiter = NewUpstreamLimiter(a.Config.GitHubPerHour, time.Hour)
	}
	if a.bilibiliLimiter == nil && a.Config.BilibiliPerMinute > 0 {
		a.bilibiliLimiter = NewUpstreamLimiter(a.Config.BilibiliPerMinute, time.Minute)
	}
	return NewEnricher(EnricherConfig{
		Stars:           a.starSource,
		Views:           a.viewSource,
		Store:           a.Store,
		Logger:          a.Echo.Logger,
		GitHubLimiter:   a.githubLimiter,
		BilibiliLimiter: a.bilibiliLimiter,
	})
}

// RefreshCounters runs one synchronous counter refresh against the current
// fixtures. Init must have been called.
func (a *App) RefreshCounters(ctx context.Context) Counters {
	a.Counters.Refresh(ctx, a.Content.Content())
	return a.Counters.Snapshot()
}

// Start initializes the app, starts the counter refresher, and serves until
// the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}

	if a.Config.RefreshInterval > 0 {
		a.stopRefresh = a.Counters.StartRefreshScheduler(a.Content.Content, a.Config.RefreshInterval)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served from the embedded FS; everything else under
	// /public comes from the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	for _, s := range ListingSections {
		e.GET("/"+string(s)+"/", a.handleSection)
	}

	e.GET("/api/counters", a.handleCounters)

	e.POST("/prefs/theme/", a.handleThemePref)
	e.POST("/prefs/lang/", a.handleLangPref)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopRefresh != nil {
		a.stopRefresh()
	}
	if a.githubLimiter != nil {
		a.githubLimiter.Stop()
	}
	if a.bilibiliLimiter != nil {
		a.bilibiliLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
