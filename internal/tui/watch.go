package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/styles"
)

// WatchData holds watcher status information
type WatchData struct {
	PID        int
	StartTime  time.Time
	Interval   time.Duration
	ContentDir string
	PublicDir  string

	LastBuildTime  time.Time
	PagesGenerated int
	BuildErrors    int
	LogLines       []string
}

// WatchMsg is sent when watcher data is ready
type WatchMsg struct {
	Data *WatchData
	Err  error
}

// WatchModel is the live dashboard shown while watching
type WatchModel struct {
	data  *WatchData
	err   error
	ready bool
	now   func() time.Time
}

// InitWatchModel creates a new watch dashboard model
func InitWatchModel() WatchModel {
	return WatchModel{now: time.Now}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case WatchMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("mdsite watch"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		b.WriteString(styles.HelpStyle.Render("Waiting for first build..."))
		b.WriteString("\n")
		return b.String()
	}

	// Watcher
	b.WriteString(styles.LabelStyle.Render("Watcher"))
	b.WriteString("\n")
	uptime := m.now().Sub(m.data.StartTime).Round(time.Second)
	b.WriteString(fmt.Sprintf("  Status:   %s\n", styles.SuccessStyle.Render("● Watching")))
	b.WriteString(fmt.Sprintf("  PID:      %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", m.data.PID))))
	b.WriteString(fmt.Sprintf("  Uptime:   %s\n", styles.ValueStyle.Render(uptime.String())))
	b.WriteString(fmt.Sprintf("  Interval: %s\n", styles.ValueStyle.Render(m.data.Interval.String())))
	b.WriteString(fmt.Sprintf("  Content:  %s\n", styles.PathStyle.Render(m.data.ContentDir)))
	b.WriteString(fmt.Sprintf("  Public:   %s\n", styles.PathStyle.Render(m.data.PublicDir)))
	b.WriteString("\n")

	// Last build
	b.WriteString(styles.LabelStyle.Render("Last Build"))
	b.WriteString("\n")
	if m.data.LastBuildTime.IsZero() {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HelpStyle.Render("No build completed yet")))
	} else {
		since := m.now().Sub(m.data.LastBuildTime).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Finished:  %s ago\n", styles.ValueStyle.Render(since.String())))
		b.WriteString(fmt.Sprintf("  Generated: %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", m.data.PagesGenerated))))
		if m.data.BuildErrors > 0 {
			b.WriteString(fmt.Sprintf("  Errors:    %s\n", styles.ErrorStyle.Render(fmt.Sprintf("%d", m.data.BuildErrors))))
		} else {
			b.WriteString(fmt.Sprintf("  Errors:    %s\n", styles.SuccessStyle.Render("0")))
		}
	}
	b.WriteString("\n")

	// Log tail
	b.WriteString(styles.LabelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(styles.HelpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpStyle.Render("q quit"))
	b.WriteString("\n")

	return b.String()
}
