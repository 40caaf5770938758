package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"bizplan/internal/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders the HTML pages bundled with the binary
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcMap := template.FuncMap{
		"formatDate": formatDate,
		"markdown":   markdown.ToHTML,
		"add":        func(a, b int) int { return a + b },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render executes a template with the given data
func (tr *TemplateRenderer) Render(w io.Writer, name string, data interface{}) error {
	if tr == nil || tr.templates == nil {
		return fmt.Errorf("templates not loaded")
	}
	if err := tr.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return nil
}

// formatDate formats a time.Time as "Jan 2, 2006"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// initials returns up to two leading letters of a business name.
func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(word)[:1])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
