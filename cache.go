package site

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts and projects with TTL.
// It is the PostProvider the server uses.
type PostCache struct {
	mu       sync.RWMutex
	posts    []PostData
	projects []Project
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.projects = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	projects, err := c.store.ListProjects()
	if err != nil {
		return err
	}
	if posts == nil {
		// non-nil marks the cache as loaded even when there are no posts
		posts = []PostData{}
	}
	c.posts = posts
	c.projects = projects
	c.fetched = time.Now()
	return nil
}

// ensureLoaded tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]PostData, []Project, error) {
	c.mu.RLock()
	if c.valid() {
		posts, projects := c.posts, c.projects
		c.mu.RUnlock()
		return posts, projects, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.projects, nil
}

// GetSortedPosts returns every published post, newest first.
func (c *PostCache) GetSortedPosts(ctx context.Context) ([]PostData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts, _, err := c.ensureLoaded()
	return posts, err
}

// ListProjects returns the cached projects.
func (c *PostCache) ListProjects() ([]Project, error) {
	_, projects, err := c.ensureLoaded()
	return projects, err
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
