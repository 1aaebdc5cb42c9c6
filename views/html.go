package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// out accumulates the first write error so components can emit markup
// without checking every call.
type out struct {
	w   io.Writer
	err error
}

func (o *out) raw(parts ...string) {
	for _, p := range parts {
		if o.err != nil {
			return
		}
		_, o.err = io.WriteString(o.w, p)
	}
}

func (o *out) text(s string) {
	o.raw(templ.EscapeString(s))
}

func (o *out) attr(name, value string) {
	o.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (o *out) url(name, value string) {
	o.attr(name, string(templ.URL(value)))
}

func (o *out) render(ctx context.Context, c templ.Component) {
	if o.err != nil || c == nil {
		return
	}
	o.err = c.Render(ctx, o.w)
}

// component adapts a body-writing func into a templ.Component.
func component(fn func(ctx context.Context, o *out)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		fn(ctx, o)
		return o.err
	})
}
