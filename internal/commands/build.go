package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/build"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
)

// Build runs a one-shot build of the site
func Build(args []string) {
	force := false
	dryRun := false
	for _, arg := range args {
		switch arg {
		case "--force", "-f":
			force = true
		case "--dry-run":
			dryRun = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
			os.Exit(1)
		}
	}

	if dryRun {
		fmt.Println(styles.TitleStyle.Render("mdsite build (DRY RUN)"))
	} else {
		fmt.Println(styles.TitleStyle.Render("mdsite build"))
	}
	fmt.Println()

	cfg, st := loadSite()

	fmt.Printf("%s → %s\n", styles.DimStyle.Render(cfg.ContentDir), styles.DimStyle.Render(cfg.PublicDir))
	if dryRun {
		fmt.Println(styles.DimStyle.Render("(dry run - no files will be written)"))
	}

	builder := build.NewBuilder(cfg, st)
	builder.Force = force
	builder.DryRun = dryRun

	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile)
		if err == nil {
			defer cleanup()
			l.ConfigLoaded(config.ConfigPath(), cfg.ContentDir, cfg.PublicDir)
			builder.SetLogger(l)
		}
	}

	m := tui.InitBuildModel("Building site...")
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	// Run build in goroutine and send result to program
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := builder.Build()
		p.Send(tui.BuildMsg{
			Result: toBuildResult(result, dryRun),
			Err:    err,
		})
	}()

	final, err := p.Run()
	if err != nil {
		fail("Error", err)
	}

	// Quitting early does not abort the build; state is saved once it finishes
	<-done

	if !dryRun {
		if err := st.Save(cfg.StateFile); err != nil {
			fail("Error saving state", err)
		}
	}

	if bm, ok := final.(tui.BuildModel); ok {
		if bm.Err() != nil || (bm.Result() != nil && len(bm.Result().Errors) > 0) {
			os.Exit(1)
		}
	}
}

func toBuildResult(result *build.Result, dryRun bool) *tui.BuildResult {
	if result == nil {
		return nil
	}
	return &tui.BuildResult{
		Generated: len(result.Generated),
		Skipped:   len(result.Skipped),
		Assets:    result.AssetsCount,
		Errors:    result.Errors,
		Duration:  result.EndTime.Sub(result.StartTime),
		DryRun:    dryRun,
	}
}
