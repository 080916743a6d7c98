package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file, creating its directory
func NewFileLogger(path string) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return New(f), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	return New(io.MultiWriter(writers...))
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a build
func (l *Logger) BuildStarted(buildID, contentDir, publicDir string, force bool) {
	l.Info("build started",
		"build_id", buildID,
		"content_dir", contentDir,
		"public_dir", publicDir,
		"force", force)
}

// BuildCompleted logs the end of a build
func (l *Logger) BuildCompleted(buildID string, pages, errors int, duration time.Duration) {
	l.Info("build completed",
		"build_id", buildID,
		"pages_generated", pages,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// PageGenerated logs a page written to disk
func (l *Logger) PageGenerated(source, dest, title string) {
	l.Info("page generated",
		"source", source,
		"dest", dest,
		"title", title)
}

// PageError logs a page that could not be generated
func (l *Logger) PageError(source string, err error) {
	l.Error("page failed",
		"source", source,
		"error", err)
}

// AssetsCopied logs the static copy step
func (l *Logger) AssetsCopied(src, dst string, files int, clean bool) {
	l.Debug("static assets copied",
		"static_dir", src,
		"public_dir", dst,
		"files", files,
		"clean", clean)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, contentDir, publicDir string) {
	l.Debug("config loaded",
		"path", path,
		"content_dir", contentDir,
		"public_dir", publicDir)
}

// Skipped logs when a page is up to date
func (l *Logger) Skipped(source, reason string) {
	l.Debug("page skipped",
		"source", source,
		"reason", reason)
}
