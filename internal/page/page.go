package page

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/mdsite/internal/convert"
)

// Template placeholders
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// Result describes a generated page
type Result struct {
	Source string
	Dest   string
	Title  string
	HTML   string
}

// Render substitutes every title and content placeholder in template
func Render(template, title, content string) string {
	r := strings.NewReplacer(TitlePlaceholder, title, ContentPlaceholder, content)
	return r.Replace(template)
}

// Build converts markdown into a full page without touching the filesystem
func Build(markdown, template string) (title, html string, err error) {
	content, err := convert.MarkdownToHTML(markdown)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	title, err = convert.ExtractTitle(markdown)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract title: %w", err)
	}

	return title, Render(template, title, content), nil
}

// Generate converts the markdown file at from into dest using the template at templatePath.
// Nothing is written when conversion fails.
func Generate(from, templatePath, dest string) (*Result, error) {
	markdown, err := os.ReadFile(from)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	template, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	title, html, err := Build(string(markdown), string(template))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", from, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	return &Result{Source: from, Dest: dest, Title: title, HTML: html}, nil
}

// OutputPath maps content/a/b.md to public/a/b.html
func OutputPath(contentDir, publicDir, source string) (string, error) {
	rel, err := filepath.Rel(contentDir, source)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", source, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", source, contentDir)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(publicDir, rel), nil
}
