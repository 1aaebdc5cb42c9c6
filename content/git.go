package content

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Clone shallow-clones the repository at url into a temporary directory and
// returns its path. ref names a branch; empty means the remote HEAD. The
// caller removes the directory with the returned cleanup func.
func Clone(ctx context.Context, url, ref string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "site-content-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	}
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("content: clone %s: %w", url, err)
	}
	return dir, cleanup, nil
}
