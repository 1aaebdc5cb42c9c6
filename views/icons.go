package views

import (
	"context"

	"github.com/a-h/templ"

	site "github.com/42arch/site"
)

// Feather icon bodies (24x24 viewBox, stroke based).
const (
	sunPaths     = `<circle cx="12" cy="12" r="5"></circle><line x1="12" y1="1" x2="12" y2="3"></line><line x1="12" y1="21" x2="12" y2="23"></line><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"></line><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"></line><line x1="1" y1="12" x2="3" y2="12"></line><line x1="21" y1="12" x2="23" y2="12"></line><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"></line><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"></line>`
	moonPaths    = `<path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"></path>`
	monitorPaths = `<rect x="2" y="3" width="20" height="14" rx="2" ry="2"></rect><line x1="8" y1="21" x2="16" y2="21"></line><line x1="12" y1="17" x2="12" y2="21"></line>`
)

// svgIcon draws an inline icon. marker, when set, becomes the
// data-theme-icon attribute that identifies the toggle's current icon.
func svgIcon(paths, class, marker string) templ.Component {
	return component(func(ctx context.Context, o *out) {
		o.raw(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"`)
		o.attr("class", class)
		if marker != "" {
			o.attr("data-theme-icon", marker)
		}
		o.raw(">", paths, "</svg>")
	})
}

// iconPaths is the icon drawn for each theme.
func iconPaths(t site.Theme) (string, bool) {
	switch t {
	case site.ThemeLight:
		return sunPaths, true
	case site.ThemeDark:
		return moonPaths, true
	case site.ThemeSystem:
		return monitorPaths, true
	default:
		return "", false
	}
}
