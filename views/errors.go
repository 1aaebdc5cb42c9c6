package views

import (
	"context"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// NotFound is the 404 page.
func NotFound(p site.Page) templ.Component {
	return Layout(p, "", errorBody("Page not found", "There is nothing at this address."))
}

// ServerError is the 500 page.
func ServerError(p site.Page) templ.Component {
	return Layout(p, "", errorBody("Something went wrong", "Please try again in a moment."))
}

func errorBody(heading, detail string) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<section class="error-page"><h1>`)
		o.text(heading)
		o.raw("</h1><p>")
		o.text(detail)
		o.raw(`</p><p><a href="/post/">Back to posts</a></p></section>`)
	})
}
