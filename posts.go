package site

import (
	"context"
	"fmt"
)

// PostLoadSize is how many posts the index shows per "load more" step.
const PostLoadSize = 5

// PostProvider returns published posts, newest first.
type PostProvider interface {
	GetSortedPosts(ctx context.Context) ([]PostData, error)
}

// PostIndex is the data snapshot behind the posts index page. It is built
// once by PreparePostIndex and only read afterwards.
type PostIndex struct {
	Posts    []PostData
	LoadSize int
}

// PreparePostIndex asks p for the sorted posts exactly once and freezes the
// result. Order is whatever the provider returned.
func PreparePostIndex(ctx context.Context, p PostProvider) (PostIndex, error) {
	posts, err := p.GetSortedPosts(ctx)
	if err != nil {
		return PostIndex{}, fmt.Errorf("site: load posts: %w", err)
	}
	frozen := make([]PostData, len(posts))
	copy(frozen, posts)
	return PostIndex{Posts: frozen, LoadSize: PostLoadSize}, nil
}

// Batches splits posts into consecutive groups of size, the steps a
// "load more" control walks through. The last group may be shorter.
func Batches(posts []PostData, size int) [][]PostData {
	if size <= 0 {
		size = PostLoadSize
	}
	var out [][]PostData
	for start := 0; start < len(posts); start += size {
		end := start + size
		if end > len(posts) {
			end = len(posts)
		}
		out = append(out, posts[start:end])
	}
	return out
}

// WithTag returns a copy of ix holding only posts tagged tag.
func (ix PostIndex) WithTag(tag string) PostIndex {
	if tag == "" {
		return ix
	}
	return PostIndex{Posts: FilterByTag(ix.Posts, tag), LoadSize: ix.LoadSize}
}

// FilterByTag returns the posts carrying tag, case-insensitively. An empty
// tag returns posts unchanged.
func FilterByTag(posts []PostData, tag string) []PostData {
	if tag == "" {
		return posts
	}
	normalized := normalizeTag(tag)
	var filtered []PostData
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}
