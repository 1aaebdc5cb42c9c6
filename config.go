package site

import (
	"time"

	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "42arch")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path"` // SQLite path (default "data/site.db")
	ContentDir   string `mapstructure:"content_dir"`   // Markdown content root (default "content")
	StaticDir    string `mapstructure:"static_dir"`    // User static assets (default "public")

	AdminPassword string `mapstructure:"admin_password"` // Required to serve: admin login password
	SessionSecret string `mapstructure:"session_secret"` // Required to serve: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl"` // Post cache TTL (default 5min)

	LogLevel string `mapstructure:"log_level"` // zerolog level name (default "info")
	LogHuman bool   `mapstructure:"log_human"` // Console writer instead of JSON
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "42arch"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "42Arch, Dan's personal site."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger replaces the logger built from LogLevel/LogHuman.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
		a.customLogger = true
	}
}

// WithProvider sets the post provider used by the index page and the static
// build. Without it the SQLite-backed cache is used.
func WithProvider(p PostProvider) Option {
	return func(a *App) {
		a.provider = p
	}
}

// WithThemeContext replaces the cookie-backed theme context factory.
func WithThemeContext(fn ThemeContextFunc) Option {
	return func(a *App) {
		a.themeContext = fn
	}
}
