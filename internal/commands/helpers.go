package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
)

// BuildSummary is the most recent completed build found in a log file
type BuildSummary struct {
	Time      time.Time
	Generated int
	Errors    int
}

// ParseLogFile reads the last N lines from the log file and extracts the latest build
func ParseLogFile(logPath string, maxLines int) ([]string, BuildSummary) {
	var summary BuildSummary

	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, summary
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	// Look for most recent "build completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if !strings.Contains(line, "build completed") {
			continue
		}

		// Format: 2025-11-27 14:11:57 INFO build completed ...
		if len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				summary.Time = t
			}
		}

		// Best effort, missing fields stay zero
		if idx := strings.Index(line, "pages_generated="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx:], "pages_generated=%d", &summary.Generated) //nolint:errcheck // best effort parsing
		}
		if idx := strings.Index(line, " errors="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx+1:], "errors=%d", &summary.Errors) //nolint:errcheck // best effort parsing
		}
		break
	}

	return recentLines, summary
}

// loadSite loads configuration and state, exiting on failure
func loadSite() (*config.Config, *state.State) {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		fail("Error loading state", err)
	}

	return cfg, st
}

// fail prints an error and exits
func fail(msg string, err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg+": "+err.Error()))
	os.Exit(1)
}

// fileArg returns the single file argument of a command, exiting when it is missing
func fileArg(command string, args []string) string {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: mdsite %s <file.md>\n", command)
		os.Exit(1)
	}
	return args[0]
}
