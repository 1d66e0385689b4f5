package server

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page template together with the shared layout.
// Execute the result to render the whole page.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}
