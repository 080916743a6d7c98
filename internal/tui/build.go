package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/styles"
)

// BuildResult holds the outcome of a build for display
type BuildResult struct {
	Generated int
	Skipped   int
	Assets    int
	Errors    []error
	Duration  time.Duration
	DryRun    bool
}

// BuildMsg is sent when the build completes
type BuildMsg struct {
	Result *BuildResult
	Err    error
}

// BuildModel is the Bubble Tea model for the build progress display
type BuildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *BuildResult
	err      error
}

// InitBuildModel creates a new build progress model
func InitBuildModel(status string) BuildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return BuildModel{
		spinner: s,
		status:  status,
	}
}

// Err returns the build error, if any, once the model has finished
func (m BuildModel) Err() error {
	return m.err
}

// Result returns the build result once the model has finished
func (m BuildModel) Result() *BuildResult {
	return m.result
}

func (m BuildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m BuildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m BuildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Build failed: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	verb := "Generated"
	if m.result.DryRun {
		verb = "Would generate"
	}

	if m.result.Generated == 0 && len(m.result.Errors) == 0 {
		b.WriteString(styles.SuccessStyle.Render("✓ Site is up to date"))
	} else {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s %d page(s)", verb, m.result.Generated)))
		if len(m.result.Errors) > 0 {
			b.WriteString(", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", len(m.result.Errors))))
		}
	}
	b.WriteString("\n")

	for _, err := range m.result.Errors {
		b.WriteString(styles.ErrorStyle.Render("  ✗ "+err.Error()) + "\n")
	}

	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf(
		"%d unchanged, %d asset(s) copied, completed in %v",
		m.result.Skipped, m.result.Assets, m.result.Duration.Round(time.Millisecond))))
	b.WriteString("\n")

	return b.String()
}
