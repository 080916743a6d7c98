package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/convert"
	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/page"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Render prints the HTML fragment for a markdown file
func Render(args []string) {
	path := fileArg("render", args)

	markdown, err := os.ReadFile(path)
	if err != nil {
		fail("Error reading file", err)
	}

	html, err := convert.MarkdownToHTML(string(markdown))
	if err != nil {
		fail("Error rendering "+path, err)
	}

	fmt.Println(html)
}

// Title prints the h1 title of a markdown file
func Title(args []string) {
	path := fileArg("title", args)

	markdown, err := os.ReadFile(path)
	if err != nil {
		fail("Error reading file", err)
	}

	title, err := convert.ExtractTitle(string(markdown))
	if err != nil {
		fail("Error extracting title from "+path, err)
	}

	fmt.Println(title)
}

// Diff shows how rebuilding a content file would change its published page
func Diff(args []string) {
	path := fileArg("diff", args)

	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}

	source, err := filepath.Abs(path)
	if err != nil {
		fail("Error resolving path", err)
	}

	rendered, err := diffPage(cfg, source)
	if err != nil {
		fail("Error generating diff", err)
	}

	if rendered == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ Published page is current"))
		return
	}
	fmt.Print(rendered)
}

// diffPage renders the diff between source's published page and a fresh build
func diffPage(cfg *config.Config, source string) (string, error) {
	dest, err := page.OutputPath(cfg.ContentDir, cfg.PublicDir, source)
	if err != nil {
		return "", err
	}
	return diff.Generate(source, dest, cfg.Template)
}
