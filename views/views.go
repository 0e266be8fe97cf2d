package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var FS embed.FS

const INDEX_TEMPLATE = "index.tmpl"

func Templates() (*template.Template, error) {
	return template.New("").ParseFS(FS, "templates/*.tmpl")
}
