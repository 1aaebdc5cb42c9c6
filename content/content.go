// Package content reads posts and projects from a directory of markdown
// files with YAML front matter:
//
//	posts/<slug>.md     title, date (YYYY-MM-DD), summary, tags, draft, slug
//	projects/<slug>.md  name, description, url, repo, tags, cover, weight
//
// It can serve them directly as a site.PostProvider or import them into
// the SQLite store.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	site "github.com/42arch/site"
)

const (
	postsDir    = "posts"
	projectsDir = "projects"

	summaryLimit = 200
)

// ErrDuplicateSlug is returned when two files resolve to the same slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

type postMatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug" validate:"omitempty,slug"`
	Date        string   `yaml:"date" validate:"required,datetime=2006-01-02"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

type projectMatter struct {
	Name        string   `yaml:"name" validate:"required"`
	Slug        string   `yaml:"slug" validate:"omitempty,slug"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url" validate:"omitempty,url"`
	Repo        string   `yaml:"repo" validate:"omitempty,url"`
	Tags        []string `yaml:"tags"`
	Cover       string   `yaml:"cover"`
	Weight      int      `yaml:"weight"`
}

// ProjectFile is a parsed project plus the cover path from its front
// matter, relative to the content root.
type ProjectFile struct {
	site.Project
	CoverSource string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == site.Slugify(s)
	})
	return v
}

// LoadPosts parses every posts/*.md file in fsys, drafts included, and
// returns them newest first. A missing posts directory yields no posts.
func LoadPosts(fsys fs.FS) ([]site.PostData, error) {
	names, err := markdownFiles(fsys, postsDir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(names))
	posts := make([]site.PostData, 0, len(names))
	for _, name := range names {
		p, err := parsePost(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", name, err)
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("content: %s and %s: %w %q", prev, name, ErrDuplicateSlug, p.Slug)
		}
		seen[p.Slug] = name
		posts = append(posts, p)
	}
	SortPosts(posts)
	return posts, nil
}

// LoadProjects parses every projects/*.md file in fsys, ordered by weight
// and then name.
func LoadProjects(fsys fs.FS) ([]ProjectFile, error) {
	names, err := markdownFiles(fsys, projectsDir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(names))
	projects := make([]ProjectFile, 0, len(names))
	for _, name := range names {
		p, err := parseProject(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", name, err)
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("content: %s and %s: %w %q", prev, name, ErrDuplicateSlug, p.Slug)
		}
		seen[p.Slug] = name
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Weight != projects[j].Weight {
			return projects[i].Weight < projects[j].Weight
		}
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

// SortPosts orders posts newest first, slug ascending within a day.
func SortPosts(posts []site.PostData) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
}

func markdownFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, path.Join(dir, e.Name()))
	}
	return names, nil
}

func parsePost(fsys fs.FS, name string) (site.PostData, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return site.PostData{}, err
	}
	var m postMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &m, yamlFormat)
	if err != nil {
		return site.PostData{}, fmt.Errorf("front matter: %w", err)
	}
	if err := validate.Struct(m); err != nil {
		return site.PostData{}, fmt.Errorf("front matter: %w", err)
	}

	slug := m.Slug
	if slug == "" {
		slug = site.Slugify(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	}
	if slug == "" {
		return site.PostData{}, errors.New("cannot derive slug from file name")
	}
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = titleFromSlug(slug)
	}
	summary := strings.TrimSpace(m.Summary)
	if summary == "" {
		summary = strings.TrimSpace(m.Description)
	}
	if summary == "" {
		summary = excerpt(string(body), summaryLimit)
	}
	return site.PostData{
		Slug:      slug,
		Title:     title,
		Date:      m.Date,
		Summary:   summary,
		Tags:      site.FilterEmpty(m.Tags),
		Content:   strings.TrimSpace(string(body)),
		Link:      site.PostLink(slug),
		Published: !m.Draft,
	}, nil
}

func parseProject(fsys fs.FS, name string) (ProjectFile, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ProjectFile{}, err
	}
	var m projectMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &m, yamlFormat)
	if err != nil {
		return ProjectFile{}, fmt.Errorf("front matter: %w", err)
	}
	if err := validate.Struct(m); err != nil {
		return ProjectFile{}, fmt.Errorf("front matter: %w", err)
	}
	slug := m.Slug
	if slug == "" {
		slug = site.Slugify(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	}
	description := strings.TrimSpace(m.Description)
	if description == "" {
		description = excerpt(string(body), summaryLimit)
	}
	pf := ProjectFile{
		Project: site.Project{
			Slug:        slug,
			Name:        m.Name,
			Description: description,
			URL:         m.URL,
			Repo:        m.Repo,
			Tags:        site.FilterEmpty(m.Tags),
			Weight:      m.Weight,
		},
	}
	if m.Cover != "" {
		pf.CoverSource = path.Clean(strings.TrimPrefix(m.Cover, "/"))
	}
	return pf, nil
}

func titleFromSlug(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// excerpt returns the first paragraph of md that is not a heading, cut to
// at most limit runes on a word boundary.
func excerpt(md string, limit int) string {
	for _, para := range strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") || strings.HasPrefix(para, "```") || strings.HasPrefix(para, "![") {
			continue
		}
		para = strings.Join(strings.Fields(para), " ")
		if utf8.RuneCountInString(para) <= limit {
			return para
		}
		cut := string([]rune(para)[:limit])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut + "…"
	}
	return ""
}
