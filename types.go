package site

// PostData is the metadata and body of one blog post. Providers produce it;
// views only read it.
type PostData struct {
	Slug      string
	Title     string
	Date      string // YYYY-MM-DD
	Summary   string
	Tags      []string
	Content   string
	Link      string
	Published bool
}

// Project is one entry of the project section.
type Project struct {
	Slug        string
	Name        string
	Description string
	URL         string
	Repo        string
	Tags        []string
	Cover       string // path under /public, empty when the project has no cover
	Weight      int
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// PostLink is the canonical path of the post with slug.
func PostLink(slug string) string {
	return "/post/" + slug + "/"
}
