package content

import (
	"context"
	"io/fs"

	site "github.com/42arch/site"
)

// Provider serves published posts and projects straight from a content
// directory. Files are re-read on every call.
type Provider struct {
	fsys fs.FS
}

// NewProvider returns a Provider reading from fsys.
func NewProvider(fsys fs.FS) *Provider {
	return &Provider{fsys: fsys}
}

// GetSortedPosts returns published posts, newest first.
func (p *Provider) GetSortedPosts(ctx context.Context) ([]site.PostData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := LoadPosts(p.fsys)
	if err != nil {
		return nil, err
	}
	posts := all[:0]
	for _, post := range all {
		if post.Published {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// ListProjects returns the projects. Covers are referenced at the path the
// importer would write them to.
func (p *Provider) ListProjects() ([]site.Project, error) {
	files, err := LoadProjects(p.fsys)
	if err != nil {
		return nil, err
	}
	projects := make([]site.Project, len(files))
	for i, f := range files {
		projects[i] = f.Project
		if f.CoverSource != "" {
			projects[i].Cover = coverURL(f.Slug)
		}
	}
	return projects, nil
}

var (
	_ site.PostProvider  = (*Provider)(nil)
	_ site.ProjectLister = (*Provider)(nil)
)
