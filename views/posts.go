package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// PostIndex is the posts index page: the loader next to an empty aside.
func PostIndex(p site.Page, ix site.PostIndex, activeTag string, tags []string) templ.Component {
	body := component(func(ctx context.Context, o *out) {
		o.raw(`<article><div class="prose posts">`)
		o.raw(`<div class="posts-main">`)
		o.render(ctx, TagBar(tags, activeTag))
		o.render(ctx, PostsLoader(ix.Posts, ix.LoadSize))
		o.raw(`</div><div class="posts-aside"></div></div></article>`)
	})
	return Layout(p, site.WebsiteJsonLD(p), body)
}

// TagBar links every tag to the filtered index, marking the active one.
func TagBar(tags []string, active string) templ.Component {
	return component(func(ctx context.Context, o *out) {
		if len(tags) == 0 {
			return
		}
		o.raw(`<nav class="post-tags" aria-label="Tags">`)
		o.raw(`<a href="/post/" class="tag`)
		if active == "" {
			o.raw(" active")
		}
		o.raw(`">all</a>`)
		for _, t := range tags {
			o.raw(`<a`)
			o.url("href", "/post/?tag="+url.QueryEscape(t))
			o.raw(` class="tag`)
			if t == active {
				o.raw(" active")
			}
			o.raw(`">#`)
			o.text(t)
			o.raw("</a>")
		}
		o.raw("</nav>")
	})
}

// PostsLoader lists posts in groups of loadSize. Only the first group is
// visible; a "Load more" button reveals the next one per click.
func PostsLoader(posts []site.PostData, loadSize int) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<div data-posts-loader`)
		o.attr("data-load-size", strconv.Itoa(loadSize))
		o.attr("data-total", strconv.Itoa(len(posts)))
		o.raw(">")
		if len(posts) == 0 {
			o.raw(`<p class="empty">No posts yet.</p></div>`)
			return
		}
		batches := site.Batches(posts, loadSize)
		for i, batch := range batches {
			o.raw(`<ul class="post-list" data-batch`)
			o.attr("data-batch-index", strconv.Itoa(i))
			if i > 0 {
				o.raw(" hidden")
			}
			o.raw(">")
			for _, post := range batch {
				o.render(ctx, postItem(post))
			}
			o.raw("</ul>")
		}
		if len(batches) > 1 {
			// shown by site.js; without scripts the remaining groups stay hidden
			o.raw(`<button type="button" class="load-more" data-load-more hidden>Load more</button>`)
			o.raw(`<noscript><p><a href="/feed.xml">All posts (RSS)</a></p></noscript>`)
		}
		o.raw("</div>")
	})
}

func postItem(post site.PostData) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<li class="post-item"`)
		o.attr("data-slug", post.Slug)
		o.raw(`><time`)
		o.attr("datetime", post.Date)
		o.raw(">")
		o.text(post.Date)
		o.raw(`</time><h2><a`)
		o.url("href", post.Link)
		o.raw(">")
		o.text(post.Title)
		o.raw("</a></h2>")
		if post.Summary != "" {
			o.raw("<p>")
			o.text(post.Summary)
			o.raw("</p>")
		}
		if len(post.Tags) > 0 {
			o.raw(`<div class="post-tags">`)
			for _, t := range post.Tags {
				o.raw(`<a class="tag"`)
				o.url("href", "/post/?tag="+url.QueryEscape(t))
				o.raw(">#")
				o.text(t)
				o.raw("</a>")
			}
			o.raw("</div>")
		}
		o.raw("</li>")
	})
}

// Post is a single post page with related posts underneath.
func Post(p site.Page, post site.PostData, related []site.PostData) templ.Component {
	body := component(func(ctx context.Context, o *out) {
		o.raw(`<article class="prose post"><header><time`)
		o.attr("datetime", post.Date)
		o.raw(">")
		o.text(post.Date)
		o.raw("</time><h1>")
		o.text(post.Title)
		o.raw("</h1></header>")
		o.render(ctx, Markdown(post.Content))
		o.raw("</article>")
		if len(related) > 0 {
			o.raw(`<aside class="related"><h2>Related</h2><ul>`)
			for _, r := range related {
				o.render(ctx, postItem(r))
			}
			o.raw("</ul></aside>")
		}
	})
	return Layout(p, site.BlogPostingJsonLD(p, post), body)
}
