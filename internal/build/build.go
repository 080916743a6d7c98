package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/page"
	"github.com/gerunddev/mdsite/internal/state"
)

// ContentExt is the extension of content files
const ContentExt = ".md"

// Builder turns the content tree into the public tree
type Builder struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger

	// Force regenerates every page and cleans the public directory
	Force bool
	// DryRun reports what would be generated without writing anything
	DryRun bool
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config, st *state.State) *Builder {
	return &Builder{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger used for build events
func (b *Builder) SetLogger(l *logger.Logger) {
	b.log = l
}

// PageError pairs a content file with the reason it failed
type PageError struct {
	Source string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Result represents the result of a build
type Result struct {
	ID          string
	Generated   []string
	Skipped     []string
	Errors      []error
	AssetsCount int
	StartTime   time.Time
	EndTime     time.Time
}

// Build copies static assets and generates every page that needs it.
// A page that fails is reported in Result.Errors and gets no output.
func (b *Builder) Build() (*Result, error) {
	result := &Result{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
	}

	templateHash, err := state.ComputeHash(b.config.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	// A template change or a first build invalidates every page
	full := b.Force || templateHash != b.state.TemplateHash || len(b.state.Pages) == 0
	b.log.BuildStarted(result.ID, b.config.ContentDir, b.config.PublicDir, full)

	if !b.DryRun {
		if b.config.StaticDir != "" {
			n, err := CopyStatic(b.config.StaticDir, b.config.PublicDir, full)
			if err != nil {
				return nil, fmt.Errorf("failed to copy static assets: %w", err)
			}
			result.AssetsCount = n
			b.log.AssetsCopied(b.config.StaticDir, b.config.PublicDir, n, full)
		} else if err := os.MkdirAll(b.config.PublicDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create public directory: %w", err)
		}
	}

	sources, err := ScanDirectory(b.config.ContentDir, ContentExt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	seen := make(map[string]bool, len(sources))
	for _, source := range sources {
		seen[source] = true
		if err := b.buildPage(source, full, result); err != nil {
			result.Errors = append(result.Errors, &PageError{Source: source, Err: err})
			b.log.PageError(source, err)
			if !b.DryRun {
				b.state.Forget(source)
				b.removeOutput(source)
			}
		}
	}

	if !b.DryRun {
		for source := range b.state.Pages {
			if !seen[source] {
				b.state.Forget(source)
			}
		}
		b.state.TemplateHash = templateHash
		b.state.LastBuild = result.StartTime
		b.state.LastBuildID = result.ID
	}

	result.EndTime = time.Now()
	b.log.BuildCompleted(result.ID, len(result.Generated), len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// buildPage generates one content file when it changed or a full build is running
func (b *Builder) buildPage(source string, full bool, result *Result) error {
	dest, err := page.OutputPath(b.config.ContentDir, b.config.PublicDir, source)
	if err != nil {
		return err
	}

	if !full {
		changed, err := b.state.HasChanged(source)
		if err != nil {
			return err
		}
		if !changed {
			result.Skipped = append(result.Skipped, source)
			b.log.Skipped(source, "unchanged")
			return nil
		}
	}

	if b.DryRun {
		markdown, err := os.ReadFile(source)
		if err != nil {
			return err
		}
		template, err := os.ReadFile(b.config.Template)
		if err != nil {
			return err
		}
		if _, _, err := page.Build(string(markdown), string(template)); err != nil {
			return err
		}
		result.Generated = append(result.Generated, source)
		return nil
	}

	res, err := page.Generate(source, b.config.Template, dest)
	if err != nil {
		return err
	}
	if err := b.state.Update(source, dest, res.Title); err != nil {
		return fmt.Errorf("failed to record state: %w", err)
	}

	result.Generated = append(result.Generated, source)
	b.log.PageGenerated(source, dest, res.Title)
	return nil
}

// removeOutput deletes the page a previous build wrote for source
func (b *Builder) removeOutput(source string) {
	dest, err := page.OutputPath(b.config.ContentDir, b.config.PublicDir, source)
	if err != nil {
		return
	}
	if err := os.Remove(dest); err != nil {
		if !os.IsNotExist(err) {
			b.log.Warn("failed to remove stale page", "dest", dest, "error", err)
		}
		return
	}
	b.log.Info("stale page removed", "source", source, "dest", dest)
}

// ScanDirectory returns the files under dir with the given extension, sorted
func ScanDirectory(dir string, ext string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// String returns a human-readable summary of the build result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %d pages generated, %d unchanged, %d errors (took %v)",
		len(r.Generated),
		len(r.Skipped),
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
