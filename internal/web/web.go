// Package web chứa HTML pages của catalog (login form, books table)
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates parse toàn bộ templates; tên template = tên file ("login.html")
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func MustTemplates() *template.Template {
	tmpl, err := ParseTemplates()
	if err != nil {
		panic(err)
	}
	return tmpl
}
