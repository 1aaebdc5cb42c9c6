package site

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the scripts and styles shipped with the site:
// site.js (theme toggle + post loader) and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

var embeddedFiles = []string{"site.js", "site.css"}

// registerAssets serves embedded files under /public/ ahead of the user's static dir.
func (a *App) registerAssets() {
	e := a.Echo
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	for _, name := range embeddedFiles {
		e.GET("/public/"+name, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	}
	e.Static("/public", a.Config.StaticDir)
}
