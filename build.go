package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// Build writes the whole site into dir as static files.
//
// Posts are loaded exactly once before anything is rendered; if the provider
// fails, Build returns the error and leaves dir untouched.
func (a *App) Build(ctx context.Context, dir string) error {
	if a.provider == nil || a.projects == nil {
		if err := a.Open(); err != nil {
			return err
		}
	}

	ix, err := PreparePostIndex(ctx, a.provider)
	if err != nil {
		return fmt.Errorf("site: build: %w", err)
	}
	a.Metrics.observeIndex(ix)
	projects, err := a.projects.ListProjects()
	if err != nil {
		return fmt.Errorf("site: build: load projects: %w", err)
	}

	files := map[string]func(io.Writer) error{}
	page := func(meta PageMeta, cmp func(Page) templ.Component) func(io.Writer) error {
		// no visitor at build time: the toggle renders unmounted
		p := Page{
			SiteName: a.Config.Name,
			SiteURL:  a.Config.URL,
			Meta:     meta,
			Theme:    ThemeState{Theme: ThemeSystem},
		}
		return func(w io.Writer) error {
			return cmp(p).Render(ctx, w)
		}
	}

	tags := CollectTags(ix.Posts)
	indexMeta := PostsMetadata()
	indexMeta.URL = BuildURL(a.Config.URL, "post")
	renderIndex := page(indexMeta, func(p Page) templ.Component {
		return a.Views.PostIndex(p, ix, "", tags)
	})
	files["index.html"] = renderIndex
	files["post/index.html"] = renderIndex

	for _, post := range ix.Posts {
		meta := PageMeta{
			Title:       fmt.Sprintf("%s | %s", a.Config.Name, post.Title),
			Description: post.Summary,
			URL:         BuildURL(a.Config.URL, "post", post.Slug),
			OGType:      "article",
		}
		files[filepath.Join("post", post.Slug, "index.html")] = page(meta, func(p Page) templ.Component {
			return a.Views.Post(p, post, FilterRelatedPosts(post, ix.Posts))
		})
	}

	projectMeta := ProjectMetadata()
	projectMeta.URL = BuildURL(a.Config.URL, "project")
	files["project/index.html"] = page(projectMeta, func(p Page) templ.Component {
		return a.Views.Projects(p, projects)
	})
	files["404.html"] = page(a.notFoundMeta(), a.Views.NotFound)
	files["feed.xml"] = func(w io.Writer) error { return a.writeRSS(w, ix.Posts) }
	files["sitemap.xml"] = func(w io.Writer) error { return a.writeSitemap(w, ix.Posts) }
	files["robots.txt"] = func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
		return err
	}

	// Render everything in memory first so a template error leaves dir alone.
	rendered := make(map[string][]byte, len(files))
	for name, write := range files {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return fmt.Errorf("site: build: render %s: %w", name, err)
		}
		rendered[name] = buf.Bytes()
	}

	for name, body := range rendered {
		if err := writeFile(filepath.Join(dir, name), body); err != nil {
			return err
		}
	}
	embeddedFS, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	if err := copyTree(embeddedFS, filepath.Join(dir, "public")); err != nil {
		return fmt.Errorf("site: build: embedded assets: %w", err)
	}
	if info, err := os.Stat(a.Config.StaticDir); err == nil && info.IsDir() {
		if err := copyTree(os.DirFS(a.Config.StaticDir), filepath.Join(dir, "public")); err != nil {
			return fmt.Errorf("site: build: static assets: %w", err)
		}
		// pages link /favicon.svg, which the server answers from the static dir
		if icon, err := os.ReadFile(filepath.Join(a.Config.StaticDir, "favicon.svg")); err == nil {
			if err := writeFile(filepath.Join(dir, "favicon.svg"), icon); err != nil {
				return err
			}
		}
	}

	a.Log.Info().
		Str("dir", dir).
		Int("posts", len(ix.Posts)).
		Int("projects", len(projects)).
		Int("files", len(rendered)).
		Msg("site built")
	return nil
}

func writeFile(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

// copyTree copies every regular file of src into dst, keeping relative paths.
func copyTree(src fs.FS, dst string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		body, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dst, filepath.FromSlash(path)), body)
	})
}
