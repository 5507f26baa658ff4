// Package render turns a preview projection into standalone HTML using the
// embedded template set. The produced page is what the PDF exporter prints.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/resumatehq/resumate/internal/preview"
)

//go:embed templates/*.html
var templateFiles embed.FS

// DefaultTemplate is used when a document carries an unknown template ID.
const DefaultTemplate = "modern"

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

func load() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("resume").Funcs(template.FuncMap{
			"join": strings.Join,
		}).ParseFS(templateFiles, "templates/*.html")
	})
	return parsed, parseErr
}

// Available returns the template IDs shipped with the binary, sorted.
func Available() []string {
	tmpl, err := load()
	if err != nil {
		return nil
	}
	var names []string
	for _, t := range tmpl.Templates() {
		name := strings.TrimSuffix(t.Name(), ".html")
		if name != t.Name() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Known reports whether a template ID is shipped with the binary.
func Known(id string) bool {
	for _, name := range Available() {
		if name == id {
			return true
		}
	}
	return false
}

// HTML renders the view with its template, falling back to DefaultTemplate
// for unknown IDs so a stale templateId on a stored document never blocks
// rendering.
func HTML(view preview.View) ([]byte, error) {
	tmpl, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	name := view.TemplateID + ".html"
	if tmpl.Lookup(name) == nil {
		name = DefaultTemplate + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
