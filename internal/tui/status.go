package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/styles"
)

// PageStatus values
const (
	PageUpToDate = "up to date"
	PageChanged  = "changed"
	PageNew      = "new"
)

// PageStatus describes one content file
type PageStatus struct {
	Source string // absolute path
	Rel    string // path relative to the content directory
	Title  string
	Status string
}

// StatusData holds all the information for the status display
type StatusData struct {
	ContentDir  string
	PublicDir   string
	Template    string
	StateFile   string
	LastBuild   time.Time
	LastBuildID string
	Pages       []PageStatus
}

// Pending returns the number of pages a build would regenerate
func (d *StatusData) Pending() int {
	n := 0
	for _, p := range d.Pages {
		if p.Status != PageUpToDate {
			n++
		}
	}
	return n
}

// StatusMsg is sent when status data is ready
type StatusMsg struct {
	Data *StatusData
	Err  error
}

// DiffMsg carries a rendered diff for the selected page
type DiffMsg struct {
	Source string
	Diff   string
	Err    error
}

// StatusModel shows the tracked pages and lets the user inspect diffs
type StatusModel struct {
	spinner  spinner.Model
	table    table.Model
	data     *StatusData
	err      error
	scanning bool

	diffFunc func(source string) (string, error)
	diff     *DiffMsg
	viewport viewport.Model
}

// InitStatusModel creates a new status display model.
// diffFunc renders the diff for a content file when a row is selected.
func InitStatusModel(diffFunc func(source string) (string, error)) StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	columns := []table.Column{
		{Title: "Page", Width: 40},
		{Title: "Title", Width: 30},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ts := table.DefaultStyles()
	ts.Header = styles.TableHeaderStyle
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	return StatusModel{
		spinner:  s,
		table:    t,
		scanning: true,
		diffFunc: diffFunc,
		viewport: viewport.New(100, 20),
	}
}

func (m StatusModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.diff = nil
			return m, nil
		case "up", "k", "down", "j", "pgup", "pgdown":
			if m.diff != nil {
				m.viewport, cmd = m.viewport.Update(msg)
			} else {
				m.table, cmd = m.table.Update(msg)
			}
			return m, cmd
		case "enter":
			if m.diff == nil {
				return m, m.showDiff()
			}
			return m, nil
		}

	case StatusMsg:
		m.scanning = false
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Pages))
			for _, p := range m.data.Pages {
				rows = append(rows, table.Row{p.Rel, p.Title, p.Status})
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case DiffMsg:
		m.diff = &msg
		switch {
		case msg.Err != nil:
			m.viewport.SetContent(styles.ErrorStyle.Render("✗ " + msg.Err.Error()))
		case msg.Diff == "":
			m.viewport.SetContent(styles.SuccessStyle.Render("✓ Published page is current"))
		default:
			m.viewport.SetContent(msg.Diff)
		}
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.scanning {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// selected returns the page under the cursor
func (m StatusModel) selected() (PageStatus, bool) {
	if m.data == nil {
		return PageStatus{}, false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.data.Pages) {
		return PageStatus{}, false
	}
	return m.data.Pages[idx], true
}

func (m StatusModel) showDiff() tea.Cmd {
	p, ok := m.selected()
	if !ok || m.diffFunc == nil {
		return nil
	}
	return func() tea.Msg {
		d, err := m.diffFunc(p.Source)
		return DiffMsg{Source: p.Rel, Diff: d, Err: err}
	}
}

func (m StatusModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("mdsite status"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.scanning {
		b.WriteString(fmt.Sprintf("%s Scanning content...\n", m.spinner.View()))
		return b.String()
	}

	if m.data == nil {
		return b.String()
	}

	if m.diff != nil {
		b.WriteString(styles.LabelStyle.Render("Diff: " + m.diff.Source))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • esc back • q quit"))
		b.WriteString("\n")
		return b.String()
	}

	// Configuration
	b.WriteString(styles.LabelStyle.Render("Configuration"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Content:  %s\n", styles.PathStyle.Render(m.data.ContentDir)))
	b.WriteString(fmt.Sprintf("  Public:   %s\n", styles.PathStyle.Render(m.data.PublicDir)))
	b.WriteString(fmt.Sprintf("  Template: %s\n", styles.PathStyle.Render(m.data.Template)))
	b.WriteString(fmt.Sprintf("  State:    %s\n", styles.PathStyle.Render(m.data.StateFile)))
	b.WriteString("\n")

	// Last build
	b.WriteString(styles.LabelStyle.Render("Last Build"))
	b.WriteString("\n")
	if m.data.LastBuild.IsZero() {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HelpStyle.Render("Never built")))
	} else {
		b.WriteString(fmt.Sprintf("  Time: %s\n", styles.ValueStyle.Render(m.data.LastBuild.Format(time.DateTime))))
		b.WriteString(fmt.Sprintf("  ID:   %s\n", styles.ValueStyle.Render(m.data.LastBuildID)))
	}
	b.WriteString("\n")

	// Pending
	b.WriteString(styles.LabelStyle.Render("Pages"))
	b.WriteString("\n")
	if pending := m.data.Pending(); pending == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", styles.SuccessStyle.Render(fmt.Sprintf("✓ %d page(s), all up to date", len(m.data.Pages)))))
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HighlightStyle.Render(fmt.Sprintf("● %d of %d page(s) need a build", pending, len(m.data.Pages)))))
	}
	b.WriteString("\n")

	if len(m.data.Pages) > 0 {
		b.WriteString(styles.TableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter diff • q/ctrl+c quit"))
	} else {
		b.WriteString(styles.HelpStyle.Render("q/ctrl+c quit"))
	}
	b.WriteString("\n")

	return b.String()
}
