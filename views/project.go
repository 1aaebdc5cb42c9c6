package views

import (
	"context"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// ProjectHeading is the fixed heading of the project section.
const ProjectHeading = "Projects 🖥️"

// ProjectLayout places the section heading above children.
func ProjectLayout(children templ.Component) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<div class="page-heading"><h1>`)
		o.text(ProjectHeading)
		o.raw(`</h1></div>`)
		o.render(ctx, children)
	})
}

// ProjectList renders the project cards.
func ProjectList(projects []site.Project) templ.Component {
	return component(func(ctx context.Context, o *out) {
		if len(projects) == 0 {
			o.raw(`<p class="empty">Nothing here yet.</p>`)
			return
		}
		o.raw(`<div class="projects">`)
		for _, p := range projects {
			o.raw(`<section class="project"`)
			o.attr("id", p.Slug)
			o.raw(">")
			if p.Cover != "" {
				o.raw("<img")
				o.url("src", p.Cover)
				o.attr("alt", p.Name)
				o.raw(` loading="lazy">`)
			}
			o.raw("<h2>")
			if p.URL != "" {
				o.raw("<a")
				o.url("href", p.URL)
				o.raw(">")
				o.text(p.Name)
				o.raw("</a>")
			} else {
				o.text(p.Name)
			}
			o.raw("</h2><p>")
			o.text(p.Description)
			o.raw("</p>")
			if p.Repo != "" {
				o.raw(`<a class="repo"`)
				o.url("href", p.Repo)
				o.raw(">Source</a>")
			}
			if len(p.Tags) > 0 {
				o.raw(`<div class="post-tags">`)
				for _, t := range p.Tags {
					o.raw(`<span class="tag">#`)
					o.text(t)
					o.raw("</span>")
				}
				o.raw("</div>")
			}
			o.raw("</section>")
		}
		o.raw("</div>")
	})
}

// Projects is the /project/ page.
func Projects(p site.Page, projects []site.Project) templ.Component {
	return Layout(p, site.WebsiteJsonLD(p), ProjectLayout(ProjectList(projects)))
}
