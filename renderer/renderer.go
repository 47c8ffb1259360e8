// Package renderer turns a valuation snapshot into the report formats the
// application ships: markdown (also the plain-text report body), HTML for
// email, and the valuation history chart.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/spello/valuation"
)

//go:embed templates
var templates embed.FS

// Options select how the report labels holdings and what it is titled.
type Options struct {
	Name string // report title
	Mode valuation.DisplayMode
	// MaxPriceMisses is the tolerance the severity banner is classified
	// against.
	MaxPriceMisses int
}

// Markdown renders the snapshot as a markdown report. The same string serves
// as the plain-text report body.
func Markdown(s *valuation.Snapshot, opts Options) string {
	partials := map[string]string{
		"report_summary":  "report_summary.md",
		"report_classes":  "report_classes.md",
		"report_rankings": "report_rankings.md",
	}
	return renderTemplate("report", "report.md", partials, NewReport(s, opts))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := templates.ReadFile("templates/" + mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := templates.ReadFile("templates/" + file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
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
