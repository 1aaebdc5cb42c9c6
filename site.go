// Package site is the 42arch personal website: a posts index with
// incremental loading, a project section, and a light/dark/system theme
// toggle, served with Echo and rendered with templ.
//
// Templates are supplied through ViewFuncs so the handlers here never
// depend on markup; cmd/site wires in the views package.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Page is the chrome every full page shares.
type Page struct {
	SiteName string
	SiteURL  string
	Meta     PageMeta
	Theme    ThemeState
	CSRF     string
}

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	PostIndex      func(p Page, ix PostIndex, activeTag string, tags []string) templ.Component
	Post           func(p Page, post PostData, related []PostData) templ.Component
	Projects       func(p Page, projects []Project) templ.Component
	ThemeToggle    func(state ThemeState, csrfToken string) templ.Component
	AdminLogin     func(p Page, showError bool) templ.Component
	AdminDashboard func(p Page, posts []PostData, message string) templ.Component
	AdminForm      func(post PostData, csrfToken string) templ.Component
	NotFound       func(p Page) templ.Component
	ServerError    func(p Page) templ.Component
}

// ProjectLister returns the projects shown on the project page.
type ProjectLister interface {
	ListProjects() ([]Project, error)
}

// App wires together the store, cache, handlers, middleware and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	Views   ViewFuncs
	Log     zerolog.Logger
	Metrics *Metrics

	provider     PostProvider
	projects     ProjectLister
	themeContext ThemeContextFunc
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	customLogger bool
	ready        bool
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Views:   views,
		Metrics: NewMetrics(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if !a.customLogger {
		l, err := NewLogger(cfg.LogLevel, cfg.LogHuman, os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("site: logger: %w", err)
		}
		a.Log = l
	}
	if a.themeContext == nil {
		a.themeContext = NewCookieThemeContext(cfg.CookieSecure)
	}
	if pl, ok := a.provider.(ProjectLister); ok && a.projects == nil {
		a.projects = pl
	}
	return a, nil
}

// Open initializes the store and cache. A provider set with WithProvider is
// kept; otherwise the cache serves posts and projects.
func (a *App) Open() error {
	if a.Store != nil {
		return nil
	}
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("site: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(store, a.Config.PostCacheTTL)
	if a.provider == nil {
		a.provider = a.Cache
	}
	if a.projects == nil {
		a.projects = a.Cache
	}
	a.Log.Debug().Str("path", a.Config.DatabasePath).Msg("store opened")
	return nil
}

// Setup installs middleware and routes. It is safe to call more than once.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("site: SessionSecret is required")
	}
	if err := a.Open(); err != nil {
		return err
	}
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if a.Config.AdminPassword == "" {
		return errors.New("site: AdminPassword is required")
	}
	if err := a.Setup(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("serving")
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Log.Info().Msg("shutting down")
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	a.registerAssets()
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handlePostIndex)
	e.GET("/post/", a.handlePostIndex)
	e.GET("/post/:slug/", a.handlePost)
	e.GET("/blog", handleLegacyRedirect)
	e.GET("/project/", a.handleProjects)

	e.GET("/theme/toggle/", a.handleThemeToggle)
	e.POST("/theme/", a.handleThemeSet)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.POST("/admin/post/:slug/delete/", a.handleAdminDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// page builds the shared chrome for a full-page render.
func (a *App) page(c echo.Context, meta PageMeta) Page {
	return Page{
		SiteName: a.Config.Name,
		SiteURL:  a.Config.URL,
		Meta:     meta,
		Theme:    ThemeState{Theme: a.themeContext(c).Theme()},
		CSRF:     CsrfToken(c),
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
