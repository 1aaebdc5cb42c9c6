package site_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	site "github.com/42arch/site"
	"github.com/42arch/site/views"
)

type staticProvider struct {
	posts []site.PostData
	err   error
}

func (p staticProvider) GetSortedPosts(context.Context) ([]site.PostData, error) {
	return p.posts, p.err
}

// recordingTheme is a ThemeContext shared by every request of a test.
type recordingTheme struct {
	theme site.Theme
	sets  []site.Theme
}

func (r *recordingTheme) Theme() site.Theme { return r.theme }

func (r *recordingTheme) SetTheme(t site.Theme) {
	r.sets = append(r.sets, t)
	r.theme = t
}

func testPosts(n int) []site.PostData {
	posts := make([]site.PostData, n)
	for i := range posts {
		slug := fmt.Sprintf("entry-%02d", i)
		posts[i] = site.PostData{
			Slug:      slug,
			Title:     "Entry " + slug,
			Date:      fmt.Sprintf("2024-03-%02d", 28-i),
			Summary:   "summary of " + slug,
			Tags:      []string{"go"},
			Content:   "Body of " + slug,
			Link:      site.PostLink(slug),
			Published: true,
		}
	}
	return posts
}

func newTestApp(t *testing.T, opts ...site.Option) *site.App {
	t.Helper()
	dir := t.TempDir()
	cfg := site.SiteConfig{
		DatabasePath:  filepath.Join(dir, "site.db"),
		StaticDir:     filepath.Join(dir, "public"),
		SessionSecret: "test-secret",
		AdminPassword: "pw",
	}
	opts = append([]site.Option{site.WithLogger(zerolog.Nop())}, opts...)
	a, err := site.New(cfg, views.Funcs(), opts...)
	require.NoError(t, err)
	require.NoError(t, a.Setup())
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *site.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func themePost(value string, fetch bool) *http.Request {
	form := url.Values{"theme": {value}}
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok"})
	req.Header.Set("X-CSRF-Token", "tok")
	if fetch {
		req.Header.Set("X-Requested-With", "fetch")
	}
	return req
}

func TestPostIndexRendersAllPostsInBatches(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{posts: testPosts(12)}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>42arch | Post</title>")
	for _, p := range testPosts(12) {
		assert.Contains(t, body, `data-slug="`+p.Slug+`"`)
	}
	assert.Equal(t, 3, strings.Count(body, "data-batch-index="))
	assert.Contains(t, body, `data-batch-index="0">`)
	assert.Contains(t, body, `data-batch-index="1" hidden>`)
	assert.Contains(t, body, `data-batch-index="2" hidden>`)
	assert.Contains(t, body, `data-load-size="5"`)
	assert.Contains(t, body, "data-load-more")
	assert.Less(t, strings.Index(body, "entry-00"), strings.Index(body, "entry-11"))
}

func TestPostIndexSingleBatchHasNoLoadMore(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{posts: testPosts(5)}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "data-batch-index="))
	assert.NotContains(t, rec.Body.String(), "data-load-more")
}

func TestPostIndexEmpty(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-total="0"`)
	assert.NotContains(t, rec.Body.String(), "data-load-more")
}

func TestPostIndexProviderFailure(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{err: fmt.Errorf("backend down")}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "data-posts-loader")
}

func TestPostIndexTagFilter(t *testing.T) {
	posts := testPosts(3)
	posts[1].Tags = []string{"rust"}
	a := newTestApp(t, site.WithProvider(staticProvider{posts: posts}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/?tag=rust", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-slug="entry-01"`)
	assert.NotContains(t, body, `data-slug="entry-00"`)
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{posts: testPosts(2)}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/entry-01/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Body of entry-01</p>")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/post/missing/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestProjectPage(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SaveProject(site.Project{Slug: "atlas", Name: "Atlas", Description: "maps"}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/project/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>42arch | Project</title>")
	assert.Contains(t, body, "The projects i have made.")
	assert.Contains(t, body, "Projects 🖥️")
	assert.Less(t, strings.Index(body, "Projects 🖥️"), strings.Index(body, "Atlas"))
}

func TestFullPageTogglesAreUnmounted(t *testing.T) {
	theme := &recordingTheme{theme: site.ThemeDark}
	a := newTestApp(t,
		site.WithProvider(staticProvider{posts: testPosts(1)}),
		site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }),
	)
	for _, path := range []string{"/", "/post/", "/project/", "/post/entry-00/"} {
		rec := serve(a, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "data-theme-icon=", path)
		assert.Contains(t, rec.Body.String(), "Toggle theme", path)
		assert.Equal(t, 3, strings.Count(rec.Body.String(), "data-theme-option="), path)
	}
}

func TestThemeToggleMounted(t *testing.T) {
	for _, th := range site.Themes {
		theme := &recordingTheme{theme: th}
		a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

		rec := serve(a, httptest.NewRequest(http.MethodGet, "/theme/toggle/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, "data-theme-icon="), th)
		assert.Contains(t, body, `data-theme-icon="`+string(th)+`"`)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	}
}

func TestThemeToggleUnknownThemeRendersNoIcon(t *testing.T) {
	theme := &recordingTheme{theme: site.ThemeUnset}
	a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/theme/toggle/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "data-theme-icon=")
	assert.Contains(t, rec.Body.String(), "Toggle theme")
}

func TestThemeSelectSetsOnce(t *testing.T) {
	for _, th := range site.Themes {
		theme := &recordingTheme{theme: site.ThemeSystem}
		a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

		rec := serve(a, themePost(string(th), true))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []site.Theme{th}, theme.sets)
		assert.Contains(t, rec.Body.String(), `data-theme-icon="`+string(th)+`"`)
	}
}

func TestThemeSelectRedirectsWithoutScript(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"http://example.com/project/", "/project/"},
		{"http://example.com/post/?tag=go", "/post/?tag=go"},
		{"", "/"},
		{"http://other.example/project/", "/"},
		{"http://example.com//evil.example/x", "/"},
		{"http://example.com/%5Cevil.example/x", "/"},
		{"//evil.example/x", "/"},
		{"relative/path", "/"},
	}
	for _, tt := range tests {
		theme := &recordingTheme{theme: site.ThemeSystem}
		a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

		req := themePost("light", false)
		if tt.referer != "" {
			req.Header.Set("Referer", tt.referer)
		}
		rec := serve(a, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code, tt.referer)
		assert.Equal(t, tt.want, rec.Header().Get("Location"), tt.referer)
		assert.Equal(t, []site.Theme{site.ThemeLight}, theme.sets, tt.referer)
	}
}

func TestThemeSelectRejectsUnknown(t *testing.T) {
	theme := &recordingTheme{theme: site.ThemeSystem}
	a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

	rec := serve(a, themePost("sepia", true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, theme.sets)
}

func TestThemeSelectRequiresCSRF(t *testing.T) {
	theme := &recordingTheme{theme: site.ThemeSystem}
	a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader("theme=dark"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(a, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, theme.sets)
}

func TestThemeCookieRoundTrip(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, themePost("dark", true))
	require.Equal(t, http.StatusOK, rec.Code)
	var themeCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "theme" {
			themeCookie = ck
		}
	}
	require.NotNil(t, themeCookie)
	assert.Equal(t, "dark", themeCookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/theme/toggle/", nil)
	req.AddCookie(themeCookie)
	rec = serve(a, req)
	assert.Contains(t, rec.Body.String(), `data-theme-icon="dark"`)
}

func TestMetricsCountThemeSelections(t *testing.T) {
	theme := &recordingTheme{theme: site.ThemeSystem}
	a := newTestApp(t, site.WithThemeContext(func(echo.Context) site.ThemeContext { return theme }))

	serve(a, themePost("dark", true))
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `site_theme_selections_total{theme="dark"} 1`)
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{posts: testPosts(2)}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Entry entry-00</title>")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http://localhost:3000/post/entry-01/")
	assert.Contains(t, rec.Body.String(), "http://localhost:3000/project/")
}

func TestLegacyBlogRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/blog", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/post/", rec.Header().Get("Location"))
}

func formPost(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok"})
	req.Header.Set("X-CSRF-Token", "tok")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func adminLogin(t *testing.T, a *site.App) *http.Cookie {
	t.Helper()
	rec := serve(a, formPost("/admin/login/", url.Values{"password": {"pw"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "admin_session" {
			return ck
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestAdminSaveInvalidatesCache(t *testing.T) {
	a := newTestApp(t)
	sess := adminLogin(t, a)

	// prime the cache with an empty snapshot
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `data-total="0"`)

	rec = serve(a, formPost("/admin/save/", url.Values{
		"title":     {"Fresh Post"},
		"date":      {"2024-05-01"},
		"tags":      {"go, web"},
		"content":   {"hello"},
		"published": {"1"},
	}, sess))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "saved")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slug="fresh-post"`)

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/post/fresh-post/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminSaveRejectsBadDate(t *testing.T) {
	a := newTestApp(t)
	sess := adminLogin(t, a)

	rec := serve(a, formPost("/admin/save/", url.Values{"title": {"X"}, "date": {"May 1"}}, sess))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "Invalid+date")

	all, err := a.Store.ListAllPosts()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminDeleteInvalidatesCache(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Store.SavePost(site.PostData{Slug: "doomed", Title: "Doomed", Date: "2024-01-01", Published: true}))
	sess := adminLogin(t, a)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/post/doomed/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, formPost("/admin/post/doomed/delete/", url.Values{}, sess))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/post/doomed/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminWritesRequireSession(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, formPost("/admin/save/", url.Values{"title": {"Sneaky"}, "published": {"1"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/", rec.Header().Get("Location"))

	all, err := a.Store.ListAllPosts()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminLoginRateLimit(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 5; i++ {
		rec := serve(a, formPost("/admin/login/", url.Values{"password": {"wrong"}}))
		require.Equal(t, http.StatusOK, rec.Code, "attempt %d", i+1)
		assert.Contains(t, rec.Body.String(), "Wrong password.")
	}
	rec := serve(a, formPost("/admin/login/", url.Values{"password": {"wrong"}}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// the correct password is refused too while the address is blocked
	rec = serve(a, formPost("/admin/login/", url.Values{"password": {"pw"}}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAdminLoginSuccessDoesNotCount(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < 7; i++ {
		adminLogin(t, a)
	}
}

// site.js swaps in /theme/toggle/ only when the body is a bare toggle
// fragment; a full page (as static hosts serve for unknown paths) is refused.
func TestThemeToggleIsBareFragment(t *testing.T) {
	a := newTestApp(t, site.WithProvider(staticProvider{posts: testPosts(1)}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/theme/toggle/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	fragment := rec.Body.String()
	assert.True(t, strings.HasPrefix(fragment, "<details"), fragment)
	assert.Contains(t, fragment, "data-theme-toggle")
	assert.NotContains(t, fragment, "<html")

	page := serve(a, httptest.NewRequest(http.MethodGet, "/post/", nil)).Body.String()
	assert.Contains(t, page, "data-theme-toggle")
	assert.Contains(t, page, "<html")

	script, err := site.EmbeddedAssets.ReadFile("embedded/site.js")
	require.NoError(t, err)
	assert.Contains(t, string(script), `if (!isToggle(html)) throw`)
	assert.Contains(t, string(script), `html.indexOf("data-theme-toggle") !== -1 && !/<html[\s>]/i.test(html)`)
}
