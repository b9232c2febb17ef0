// Package publish turns documents into a standalone HTML page.
package publish

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Single newlines become <br> and raw HTML is passed through, matching what
// the editor shows.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

var page = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title     string
	Body      template.HTML
	Generated string
}

// Render converts markdown to a complete HTML document.
func Render(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, pageData{
		Title:     title,
		Body:      template.HTML(body.String()),
		Generated: time.Now().Format("2006-01-02 15:04"),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile renders markdown and writes it to dir/<slug>.html, returning the
// path written.
func WriteFile(dir, title, markdown string) (string, error) {
	data, err := Render(title, markdown)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, Slugify(title)+".html")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Slugify lowercases title and keeps only [a-z0-9-].
func Slugify(title string) string {
	s := strings.ToLower(title)
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			out.WriteRune('-')
		}
	}
	result := strings.Trim(out.String(), "-")
	// collapse consecutive dashes
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	if result == "" {
		result = fmt.Sprintf("document-%d", time.Now().Unix())
	}
	return result
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 760px; margin: 3rem auto; padding: 0 1rem; font: 16px/1.6 -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #282828; }
pre, code { background: #f4f1ea; border-radius: 4px; }
pre { padding: .8rem; overflow-x: auto; }
code { padding: .1rem .3rem; }
blockquote { border-left: 3px solid #d5c4a1; margin-left: 0; padding-left: 1rem; color: #665c54; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d5c4a1; padding: .3rem .6rem; }
footer { margin-top: 3rem; font-size: .8rem; color: #928374; }
</style>
</head>
<body>
<article>
{{.Body}}
</article>
<footer>Published with docstudio · {{.Generated}}</footer>
</body>
</html>
`
