// Package web embeds the dashboard's page templates and static assets into
// the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// TemplatesFS holds the layout and page templates.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}

// StaticFS holds the stylesheet and other static files.
func StaticFS() fs.FS {
	return mustSub("static")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic("missing embedded directory: " + dir)
	}
	return sub
}
