package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/build"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
)

// Status displays the tracked pages and what a build would regenerate
func Status() {
	cfg, st := loadSite()

	m := tui.InitStatusModel(func(source string) (string, error) {
		return diffPage(cfg, source)
	})
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	go func() {
		data, err := collectStatus(cfg, st)
		p.Send(tui.StatusMsg{Data: data, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// collectStatus compares the content tree against the build state
func collectStatus(cfg *config.Config, st *state.State) (*tui.StatusData, error) {
	sources, err := build.ScanDirectory(cfg.ContentDir, build.ContentExt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	templateHash, err := state.ComputeHash(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	templateChanged := templateHash != st.TemplateHash

	data := &tui.StatusData{
		ContentDir:  cfg.ContentDir,
		PublicDir:   cfg.PublicDir,
		Template:    cfg.Template,
		StateFile:   cfg.StateFile,
		LastBuild:   st.LastBuild,
		LastBuildID: st.LastBuildID,
		Pages:       make([]tui.PageStatus, 0, len(sources)),
	}

	for _, source := range sources {
		rel, err := filepath.Rel(cfg.ContentDir, source)
		if err != nil {
			rel = source
		}
		ps := tui.PageStatus{Source: source, Rel: rel, Status: tui.PageUpToDate}

		if tracked, ok := st.Pages[source]; !ok {
			ps.Status = tui.PageNew
		} else {
			ps.Title = tracked.Title
			changed, err := st.HasChanged(source)
			if err != nil {
				return nil, err
			}
			if changed || templateChanged {
				ps.Status = tui.PageChanged
			}
		}

		data.Pages = append(data.Pages, ps)
	}

	return data, nil
}
