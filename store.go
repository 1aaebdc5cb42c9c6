package site

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const connPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store wraps a SQLite database holding posts and projects.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas in the DSN apply to every pooled connection, not just the first.
	// WAL lets the cache reload while an import writes.
	db, err := sql.Open("sqlite", path+connPragmas)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS projects (
    slug TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    url TEXT NOT NULL,
    repo TEXT NOT NULL,
    tags TEXT NOT NULL,
    cover TEXT NOT NULL,
    weight INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

const postColumns = `slug, title, date, tags, summary, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (PostData, error) {
	var slug, title, date, tags, summary, content string
	var published int
	if err := r.Scan(&slug, &title, &date, &tags, &summary, &content, &published); err != nil {
		return PostData{}, err
	}
	return PostData{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Content:   content,
		Link:      PostLink(slug),
		Published: published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]PostData, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostData
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts, newest first, slug breaking ties.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]PostData, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
	}
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, normalizeTag(tag))
}

// ListAllPosts returns every post (published and drafts), newest first.
func (s *Store) ListAllPosts() ([]PostData, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (PostData, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// SavePost upserts a post. Tags are normalized to lowercase.
func (s *Store) SavePost(p PostData) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, joinTagColumn(p.Tags), p.Summary, p.Content, published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ListProjects returns all projects ordered by weight, then name.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT slug, name, description, url, repo, tags, cover, weight FROM projects ORDER BY weight ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var tags string
		if err := rows.Scan(&p.Slug, &p.Name, &p.Description, &p.URL, &p.Repo, &tags, &p.Cover, &p.Weight); err != nil {
			return nil, err
		}
		p.Tags = ParseTags(tags)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// SaveProject upserts a project.
func (s *Store) SaveProject(p Project) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO projects (slug, name, description, url, repo, tags, cover, weight) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Name, p.Description, p.URL, p.Repo, joinTagColumn(p.Tags), p.Cover, p.Weight)
	return err
}

// DeleteProject removes a project by slug.
func (s *Store) DeleteProject(slug string) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE slug = ?`, slug)
	return err
}

// joinTagColumn renders tags as ",a,b," so a single tag can be matched with instr.
func joinTagColumn(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = normalizeTag(t); t != "" {
			normalized = append(normalized, t)
		}
	}
	return "," + strings.Join(normalized, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
