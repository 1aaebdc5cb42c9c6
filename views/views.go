// Package views holds the templ components of the site.
package views

import site "github.com/42arch/site"

// Funcs returns the component set the site.App renders with.
func Funcs() site.ViewFuncs {
	return site.ViewFuncs{
		PostIndex:      PostIndex,
		Post:           Post,
		Projects:       Projects,
		ThemeToggle:    ThemeToggle,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		AdminForm:      AdminForm,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}
