package views

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	site "github.com/42arch/site"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestThemeToggleIconOnlyWhenMounted(t *testing.T) {
	for _, th := range site.Themes {
		mounted := render(t, ThemeToggle(site.ThemeState{Theme: th, Mounted: true}, ""))
		assert.Equal(t, 1, strings.Count(mounted, "data-theme-icon="), th)
		assert.Contains(t, mounted, `data-theme-icon="`+string(th)+`"`)

		unmounted := render(t, ThemeToggle(site.ThemeState{Theme: th}, ""))
		assert.NotContains(t, unmounted, "data-theme-icon=", th)
		assert.Contains(t, unmounted, `<span class="sr-only">Toggle theme</span>`)
	}
}

func TestThemeToggleMenu(t *testing.T) {
	html := render(t, ThemeToggle(site.ThemeState{Theme: site.ThemeLight}, "tok&<"))

	light := strings.Index(html, `data-theme-option="light"`)
	dark := strings.Index(html, `data-theme-option="dark"`)
	system := strings.Index(html, `data-theme-option="system"`)
	require.True(t, light >= 0 && dark > light && system > dark, "menu order light, dark, system")

	for _, label := range []string{"Light", "Dark", "System"} {
		assert.Contains(t, html, "<span>"+label+"</span>")
	}
	assert.Equal(t, 3, strings.Count(html, `class="icon mr-2 h-4 w-4"`))
	assert.Equal(t, 3, strings.Count(html, `value="tok&amp;&lt;"`))
}

func TestThemeToggleWithoutCSRF(t *testing.T) {
	html := render(t, ThemeToggle(site.ThemeState{Theme: site.ThemeDark}, ""))
	assert.NotContains(t, html, `name="_csrf"`)
}

func TestThemeIconUnknown(t *testing.T) {
	assert.Empty(t, render(t, ThemeIcon(site.ThemeUnset)))
	assert.Empty(t, render(t, ThemeIcon(site.Theme("sepia"))))
	assert.Contains(t, render(t, ThemeIcon(site.ThemeDark)), "<path d=\"M21 12.79")
}

func TestProjectLayoutHeadingBeforeChildren(t *testing.T) {
	child := templ.Raw(`<p id="child">hi</p>`)
	html := render(t, ProjectLayout(child))

	heading := strings.Index(html, "Projects 🖥️")
	body := strings.Index(html, `id="child"`)
	require.GreaterOrEqual(t, heading, 0)
	assert.Greater(t, body, heading)
	assert.Equal(t, 1, strings.Count(html, "<h1>"))
}

func TestProjectLayoutEmptyChildren(t *testing.T) {
	html := render(t, ProjectLayout(templ.NopComponent))
	assert.Equal(t, `<div class="page-heading"><h1>Projects 🖥️</h1></div>`, html)
}

func TestProjectMetadata(t *testing.T) {
	meta := site.ProjectMetadata()
	assert.Equal(t, "42arch | Project", meta.Title)
	assert.Equal(t, "42Arch, Dan's personal site. The projects i have made.", meta.Description)
}

func TestPostsLoader(t *testing.T) {
	posts := make([]site.PostData, 11)
	for i := range posts {
		slug := fmt.Sprintf("p%d", i)
		posts[i] = site.PostData{Slug: slug, Title: slug, Date: "2024-01-01", Link: site.PostLink(slug)}
	}
	html := render(t, PostsLoader(posts, site.PostLoadSize))

	for _, p := range posts {
		assert.Contains(t, html, `data-slug="`+p.Slug+`"`)
	}
	assert.Equal(t, 3, strings.Count(html, "data-batch-index="))
	assert.Equal(t, 2, strings.Count(html, `" hidden>`))
	assert.Contains(t, html, `<button type="button" class="load-more" data-load-more hidden>`)
}

func TestPostsLoaderEmpty(t *testing.T) {
	html := render(t, PostsLoader(nil, site.PostLoadSize))
	assert.Contains(t, html, "No posts yet.")
	assert.NotContains(t, html, "data-batch")
}

func TestPostItemEscapes(t *testing.T) {
	html := render(t, PostsLoader([]site.PostData{{Slug: "x", Title: "<script>", Link: "/post/x/"}}, 5))
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	html := render(t, Markdown("# Title\n\n<script>alert(1)</script>\n\n*em*"))
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>em</em>")
	assert.NotContains(t, html, "<script>")
}

func TestLayoutChrome(t *testing.T) {
	p := site.Page{
		SiteName: "42arch",
		SiteURL:  "https://42arch.example",
		Meta:     site.ProjectMetadata(),
		Theme:    site.ThemeState{Theme: site.ThemeDark},
		CSRF:     "tok",
	}
	html := render(t, Layout(p, `{"@type":"WebSite"}`, templ.Raw("<p>main</p>")))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="en" class="dark">`)
	assert.Contains(t, html, "<title>42arch | Project</title>")
	assert.Contains(t, html, `<script type="application/ld+json">{"@type":"WebSite"}</script>`)
	assert.Contains(t, html, `<a href="/project/">Projects</a>`)
	assert.Contains(t, html, "<main><p>main</p></main>")
	assert.NotContains(t, html, "data-theme-icon=")
}

func TestFuncsComplete(t *testing.T) {
	f := Funcs()
	assert.NotNil(t, f.PostIndex)
	assert.NotNil(t, f.Post)
	assert.NotNil(t, f.Projects)
	assert.NotNil(t, f.ThemeToggle)
	assert.NotNil(t, f.AdminLogin)
	assert.NotNil(t, f.AdminDashboard)
	assert.NotNil(t, f.AdminForm)
	assert.NotNil(t, f.NotFound)
	assert.NotNil(t, f.ServerError)
}
