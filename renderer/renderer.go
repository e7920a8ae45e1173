// Package renderer turns engine read models into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	finance "github.com/harsh-kanjar/Finance-management-system-backend"
)

//go:embed templates/*.md
var templates embed.FS

// ContributionReport is the data rendered after a monthly contribution is
// applied.
type ContributionReport struct {
	User           string
	Date           finance.Date
	SchemeCode     string
	FundName       string
	Amount         finance.Money
	NAV            finance.Money
	UnitsPurchased finance.Units
	TotalUnits     finance.Units
	Value          finance.Money
}

// RenderContribution renders a contribution report to a markdown string.
func RenderContribution(r *ContributionReport) string {
	partials := map[string]string{
		"contribution_title": "templates/contribution_title.md",
		"contribution_body":  "templates/contribution_body.md",
	}
	return renderTemplate("contribution", "templates/contribution.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
