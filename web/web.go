// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page and fragment template with funcs available.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	base := template.New("").Funcs(template.FuncMap{
		"lower": strings.ToLower,
		"join":  strings.Join,
	})
	if funcs != nil {
		base = base.Funcs(funcs)
	}
	return base.ParseFS(templateFS, "templates/*.html")
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
