package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded page templates with the shared function map
func Load() (*template.Template, error) {
	return template.New("").Funcs(GetTemplateFuncs()).ParseFS(files, "*.html")
}
