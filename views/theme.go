package views

import (
	"context"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

const (
	triggerIconClass = "icon trigger-icon"
	menuIconClass    = "icon mr-2 h-4 w-4"
)

// ThemeIcon is the trigger icon for t. Themes outside the known set render
// nothing.
func ThemeIcon(t site.Theme) templ.Component {
	paths, ok := iconPaths(t)
	if !ok {
		return templ.NopComponent
	}
	return svgIcon(paths, triggerIconClass, string(t))
}

// ThemeToggle is the light/dark/system dropdown. The trigger shows the icon
// of the current theme only once the client is mounted; each menu option
// posts its theme to /theme/.
func ThemeToggle(state site.ThemeState, csrfToken string) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<details class="theme-toggle" data-theme-toggle>`)
		o.raw(`<summary data-theme-trigger aria-haspopup="menu">`)
		if state.Mounted {
			o.render(ctx, ThemeIcon(state.Theme))
		}
		o.raw(`<span class="sr-only">Toggle theme</span></summary>`)
		o.raw(`<div class="theme-menu" role="menu">`)
		for _, t := range site.Themes {
			paths, _ := iconPaths(t)
			o.raw(`<form method="post" action="/theme/"`)
			o.attr("data-theme-option", string(t))
			o.raw(">")
			if csrfToken != "" {
				o.raw(`<input type="hidden" name="_csrf"`)
				o.attr("value", csrfToken)
				o.raw(">")
			}
			o.raw(`<input type="hidden" name="theme"`)
			o.attr("value", string(t))
			o.raw(`><button type="submit" role="menuitem">`)
			o.render(ctx, svgIcon(paths, menuIconClass, ""))
			o.raw("<span>")
			o.text(t.Label())
			o.raw("</span></button></form>")
		}
		o.raw(`</div></details>`)
	})
}
