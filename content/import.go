package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	site "github.com/42arch/site"
)

const uploadsSubdir = "uploads"

// Result summarizes an import.
type Result struct {
	Posts    int
	Drafts   int
	Projects int
	Covers   int
}

// Importer copies a content directory into the store.
type Importer struct {
	Store     *site.Store
	StaticDir string // covers are written to <StaticDir>/uploads
	Log       zerolog.Logger
}

// Import parses everything first and only then writes, so a malformed file
// leaves the store untouched.
func (im *Importer) Import(ctx context.Context, fsys fs.FS) (Result, error) {
	var res Result

	posts, err := LoadPosts(fsys)
	if err != nil {
		return res, err
	}
	projects, err := LoadProjects(fsys)
	if err != nil {
		return res, err
	}

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := im.Store.SavePost(p); err != nil {
			return res, fmt.Errorf("content: save post %s: %w", p.Slug, err)
		}
		if p.Published {
			res.Posts++
		} else {
			res.Drafts++
		}
		im.Log.Debug().Str("slug", p.Slug).Bool("published", p.Published).Msg("post imported")
	}

	for _, pf := range projects {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		project := pf.Project
		if pf.CoverSource != "" {
			if err := im.writeCover(fsys, pf); err != nil {
				return res, fmt.Errorf("content: cover for %s: %w", pf.Slug, err)
			}
			project.Cover = coverURL(pf.Slug)
			res.Covers++
		}
		if err := im.Store.SaveProject(project); err != nil {
			return res, fmt.Errorf("content: save project %s: %w", pf.Slug, err)
		}
		res.Projects++
	}

	im.Log.Info().
		Int("posts", res.Posts).
		Int("drafts", res.Drafts).
		Int("projects", res.Projects).
		Int("covers", res.Covers).
		Msg("content imported")
	return res, nil
}

// WriteCovers processes every project cover in fsys into StaticDir without
// touching the store. Static builds that read content directly use it.
func (im *Importer) WriteCovers(ctx context.Context, fsys fs.FS) (int, error) {
	projects, err := LoadProjects(fsys)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, pf := range projects {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if pf.CoverSource == "" {
			continue
		}
		if err := im.writeCover(fsys, pf); err != nil {
			return n, fmt.Errorf("content: cover for %s: %w", pf.Slug, err)
		}
		n++
	}
	return n, nil
}

func (im *Importer) writeCover(fsys fs.FS, pf ProjectFile) error {
	f, err := fsys.Open(pf.CoverSource)
	if err != nil {
		return err
	}
	defer f.Close()

	cover, err := processCover(f)
	if err != nil {
		return err
	}
	dir := filepath.Join(im.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, coverFilename(pf.Slug)), cover.Data, 0o644)
}

func coverFilename(slug string) string {
	return "project-" + slug + ".jpg"
}

func coverURL(slug string) string {
	return "/public/" + uploadsSubdir + "/" + coverFilename(slug)
}
