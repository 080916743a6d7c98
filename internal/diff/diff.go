package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/mdsite/internal/page"
)

// Unified returns a unified diff between the published page and a fresh render.
// A missing published page diffs against empty content.
func Unified(source, dest, templatePath string) (string, error) {
	markdown, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}

	template, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	_, fresh, err := page.Build(string(markdown), string(template))
	if err != nil {
		return "", fmt.Errorf("%s: %w", source, err)
	}

	published, err := os.ReadFile(dest)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read published page: %w", err)
	}

	// Published page is old, fresh render is new
	destName := filepath.Base(dest)
	edits := myers.ComputeEdits(span.URIFromPath(destName), string(published), fresh)
	return fmt.Sprint(gotextdiff.ToUnified(destName, destName+" (rebuilt)", string(published), edits)), nil
}

// Generate renders the diff for source for the terminal
func Generate(source, dest, templatePath string) (string, error) {
	unified, err := Unified(source, dest, templatePath)
	if err != nil {
		return "", err
	}
	if unified == "" {
		return "", nil
	}

	// Wrap in markdown diff code fence
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown, nil
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown, nil
	}

	return rendered, nil
}
