// Package web holds the server-rendered public portfolio pages.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

const NotFoundPage = "not_found.html"

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"initials":     initials,
		"paragraphs":   paragraphs,
		"availability": availabilityLabel,
	}).ParseFS(files, "templates/*.html")
}

// PageFor picks the page template for a portfolio template name. Legacy "pastel"
// portfolios render with the professional layout.
func PageFor(templateName string) string {
	if domain.NormalizeTemplate(templateName) == domain.TemplateProfessional {
		return "professional.html"
	}
	return "minimal.html"
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func availabilityLabel(status domain.AvailabilityStatus) string {
	switch status {
	case domain.AvailabilityOpenFulltime:
		return "Open to full-time roles"
	case domain.AvailabilityFreelance:
		return "Available for freelance"
	case domain.AvailabilityNotLooking:
		return "Not looking right now"
	}
	return ""
}
