package site

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Theme is the visitor's display mode preference.
type Theme string

const (
	ThemeUnset  Theme = ""
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes lists the selectable themes in menu order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// ParseTheme maps s to a Theme. Anything outside the closed set is ThemeUnset.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return Theme(s)
	default:
		return ThemeUnset
	}
}

// Valid reports whether t is one of the selectable themes.
func (t Theme) Valid() bool {
	return ParseTheme(string(t)) != ThemeUnset
}

// Label is the menu text for t.
func (t Theme) Label() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	case ThemeSystem:
		return "System"
	default:
		return ""
	}
}

// ThemeContext is the shared theme preference for one visitor.
type ThemeContext interface {
	Theme() Theme
	SetTheme(Theme)
}

// ThemeContextFunc binds a ThemeContext to a request.
type ThemeContextFunc func(c echo.Context) ThemeContext

const (
	themeCookieName   = "theme"
	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// CookieThemeContext stores the preference in the "theme" cookie. The cookie
// is readable by scripts so the page can apply the class before first paint.
type CookieThemeContext struct {
	c      echo.Context
	secure bool
	theme  Theme
	loaded bool
}

// NewCookieThemeContext returns a ThemeContextFunc backed by CookieThemeContext.
func NewCookieThemeContext(secure bool) ThemeContextFunc {
	return func(c echo.Context) ThemeContext {
		return &CookieThemeContext{c: c, secure: secure}
	}
}

// Theme returns the stored preference. Visitors who never chose get
// ThemeSystem; an unreadable cookie value yields ThemeUnset.
func (t *CookieThemeContext) Theme() Theme {
	if !t.loaded {
		t.loaded = true
		t.theme = ThemeSystem
		if ck, err := t.c.Cookie(themeCookieName); err == nil {
			t.theme = ParseTheme(ck.Value)
		}
	}
	return t.theme
}

// SetTheme writes the preference cookie. Invalid values are ignored.
func (t *CookieThemeContext) SetTheme(theme Theme) {
	if !theme.Valid() {
		return
	}
	t.theme = theme
	t.loaded = true
	t.c.SetCookie(&http.Cookie{
		Name:     themeCookieName,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.secure,
		HttpOnly: false,
	})
}

// ThemeState is what the toggle needs to render: the current preference and
// whether the client has mounted. Full-page renders are the first pass and
// are never mounted; the client fetches a mounted toggle once it has loaded.
type ThemeState struct {
	Theme   Theme
	Mounted bool
}
