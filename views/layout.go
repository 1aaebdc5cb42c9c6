package views

import (
	"context"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// Layout wraps body in the document shell: head metadata, header with
// navigation and the theme toggle, and main.
func Layout(p site.Page, jsonLD string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<!DOCTYPE html><html lang="en"`)
		if p.Theme.Theme == site.ThemeDark {
			o.attr("class", "dark")
		}
		o.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		o.raw("<title>")
		o.text(p.Meta.Title)
		o.raw("</title>")
		if p.Meta.Description != "" {
			o.raw(`<meta name="description"`)
			o.attr("content", p.Meta.Description)
			o.raw(">")
		}
		if p.Meta.URL != "" {
			o.raw(`<link rel="canonical"`)
			o.url("href", p.Meta.URL)
			o.raw(`><meta property="og:url"`)
			o.attr("content", p.Meta.URL)
			o.raw(">")
		}
		o.raw(`<meta property="og:title"`)
		o.attr("content", p.Meta.Title)
		o.raw(`><meta property="og:type"`)
		o.attr("content", p.Meta.OGType)
		o.raw(`><meta property="og:site_name"`)
		o.attr("content", p.SiteName)
		o.raw(`><link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		o.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		o.attr("title", p.SiteName)
		o.raw(`><link rel="stylesheet" href="/public/site.css"><script src="/public/site.js"></script>`)
		if jsonLD != "" {
			o.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		}
		o.raw(`</head><body><header class="site-header"><nav><a href="/">`)
		o.text(p.SiteName)
		o.raw(`</a><a href="/post/">Posts</a><a href="/project/">Projects</a></nav>`)
		o.render(ctx, ThemeToggle(p.Theme, p.CSRF))
		o.raw(`</header><main>`)
		o.render(ctx, body)
		o.raw(`</main></body></html>`)
	})
}
