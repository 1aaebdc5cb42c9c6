package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// AdminLogin is the password form.
func AdminLogin(p site.Page, showError bool) templ.Component {
	return Layout(p, "", component(func(ctx context.Context, o *out) {
		o.raw(`<section class="admin"><h1>Admin</h1>`)
		if showError {
			o.raw(`<p class="error" role="alert">Wrong password.</p>`)
		}
		o.raw(`<form method="post" action="/admin/login/">`)
		csrfInput(o, p.CSRF)
		o.raw(`<label>Password <input type="password" name="password" required autofocus></label>`)
		o.raw(`<button type="submit">Log in</button></form></section>`)
	}))
}

// AdminDashboard lists every post, drafts included, above an empty editor.
func AdminDashboard(p site.Page, posts []site.PostData, message string) templ.Component {
	return Layout(p, "", component(func(ctx context.Context, o *out) {
		o.raw(`<section class="admin"><header><h1>Posts</h1>`)
		o.raw(`<form method="post" action="/admin/logout/">`)
		csrfInput(o, p.CSRF)
		o.raw(`<button type="submit">Log out</button></form></header>`)
		if message != "" {
			o.raw(`<p class="notice" role="status">`)
			o.text(message)
			o.raw("</p>")
		}
		o.raw(`<table class="admin-posts"><thead><tr><th>Date</th><th>Title</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, post := range posts {
			o.raw("<tr><td>")
			o.text(post.Date)
			o.raw("</td><td><a")
			o.url("href", "/admin/post/"+post.Slug+"/")
			o.raw(">")
			o.text(post.Title)
			o.raw("</a></td><td>")
			if post.Published {
				o.raw("published")
			} else {
				o.raw("draft")
			}
			o.raw(`</td><td><form method="post"`)
			o.url("action", "/admin/post/"+post.Slug+"/delete/")
			o.raw(">")
			csrfInput(o, p.CSRF)
			o.raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		o.raw("</tbody></table><h2>New post</h2>")
		o.render(ctx, AdminForm(site.PostData{Published: true}, p.CSRF))
		o.raw("</section>")
	}))
}

// AdminForm edits post; an empty slug creates a new one.
func AdminForm(post site.PostData, csrfToken string) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<form class="admin-form" method="post" action="/admin/save/">`)
		csrfInput(o, csrfToken)
		field := func(label, name, value string) {
			o.raw("<label>")
			o.text(label)
			o.raw(` <input type="text"`)
			o.attr("name", name)
			o.attr("value", value)
			o.raw("></label>")
		}
		field("Title", "title", post.Title)
		field("Slug", "slug", post.Slug)
		field("Date", "date", post.Date)
		field("Tags", "tags", strings.Join(post.Tags, ", "))
		field("Summary", "summary", post.Summary)
		o.raw(`<label>Content <textarea name="content" rows="20">`)
		o.text(post.Content)
		o.raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if post.Published {
			o.raw(" checked")
		}
		o.raw(`> Published</label><button type="submit">Save</button></form>`)
	})
}

func csrfInput(o *out, token string) {
	if token == "" {
		return
	}
	o.raw(`<input type="hidden" name="_csrf"`)
	o.attr("value", token)
	o.raw(">")
}
