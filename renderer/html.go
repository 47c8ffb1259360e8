package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlShell wraps the converted report body into a self-contained document.
// Styles are inlined because most mail clients strip external stylesheets.
var htmlShell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; color: #222; max-width: 48em; margin: 1em auto; padding: 0 1em; }
table { border-collapse: collapse; margin: 0.5em 0; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.7em; }
th { background: #f0f0f0; text-align: left; }
h1, h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML converts a markdown report into a standalone HTML document suitable as
// an email body or a file report. GFM tables are enabled since every report
// section renders as one.
func HTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting report to html: %w", err)
	}

	var out bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())}
	if err := htmlShell.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering html shell: %w", err)
	}
	return out.String(), nil
}
