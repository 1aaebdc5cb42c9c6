package site

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// PostsMetadata is the static metadata of the posts index page.
func PostsMetadata() PageMeta {
	return PageMeta{
		Title:       "42arch | Post",
		Description: "42Arch, Dan's personal site. The posts i have written.",
		OGType:      "website",
	}
}

// ProjectMetadata is the static metadata of the project section.
func ProjectMetadata() PageMeta {
	return PageMeta{
		Title:       "42arch | Project",
		Description: "42Arch, Dan's personal site. The projects i have made.",
		OGType:      "website",
	}
}

func (a *App) handlePostIndex(c echo.Context) error {
	ix, err := PreparePostIndex(c.Request().Context(), a.provider)
	if err != nil {
		return err
	}
	a.Metrics.observeIndex(ix)

	tag := c.QueryParam("tag")
	tags := CollectTags(ix.Posts)
	meta := PostsMetadata()
	meta.URL = BuildURL(a.Config.URL, "post")
	return Render(c, a.Views.PostIndex(a.page(c, meta), ix.WithTag(tag), tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	posts, err := a.provider.GetSortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	post, ok := FindPost(posts, c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, a.notFoundMeta())))
	}
	meta := PageMeta{
		Title:       fmt.Sprintf("%s | %s", a.Config.Name, post.Title),
		Description: post.Summary,
		URL:         BuildURL(a.Config.URL, "post", post.Slug),
		OGType:      "article",
	}
	return Render(c, a.Views.Post(a.page(c, meta), post, FilterRelatedPosts(post, posts)))
}

func (a *App) handleProjects(c echo.Context) error {
	projects, err := a.projects.ListProjects()
	if err != nil {
		return err
	}
	meta := ProjectMetadata()
	meta.URL = BuildURL(a.Config.URL, "project")
	return Render(c, a.Views.Projects(a.page(c, meta), projects))
}

// handleThemeToggle renders the toggle for a client that has finished
// loading, so the icon is always shown.
func (a *App) handleThemeToggle(c echo.Context) error {
	state := ThemeState{Theme: a.themeContext(c).Theme(), Mounted: true}
	return Render(c, a.Views.ThemeToggle(state, CsrfToken(c)))
}

func (a *App) handleThemeSet(c echo.Context) error {
	theme := ParseTheme(c.FormValue("theme"))
	if theme == ThemeUnset {
		return c.String(http.StatusBadRequest, "invalid theme")
	}
	a.themeContext(c).SetTheme(theme)
	a.Metrics.ThemeSelections.WithLabelValues(string(theme)).Inc()
	a.Log.Debug().Str("theme", string(theme)).Msg("theme selected")

	if c.Request().Header.Get("X-Requested-With") == "fetch" {
		return Render(c, a.Views.ThemeToggle(ThemeState{Theme: theme, Mounted: true}, CsrfToken(c)))
	}
	return c.Redirect(http.StatusSeeOther, localReferer(c))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.provider.GetSortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeSitemap(c.Response(), posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.provider.GetSortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeRSS(c.Response(), posts)
}

func handleLegacyRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/post/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) notFoundMeta() PageMeta {
	return PageMeta{Title: a.Config.Name + " | Not found", OGType: "website"}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if (ok && he.Code == http.StatusNotFound) || errors.Is(err, ErrNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, a.notFoundMeta())))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, PageMeta{Title: a.Config.Name})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// localReferer returns the referring path when it points back at this site.
func localReferer(c echo.Context) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request().Host {
		return "/"
	}
	// "//host" and "/\host" are read by browsers as another origin
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
