package commands

import (
	"fmt"
	"os"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/build"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/daemon"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
)

// Watch rebuilds the site on an interval and shows a live dashboard
func Watch(args []string) {
	var interval time.Duration
	for i, arg := range args {
		if arg == "--interval" && i+1 < len(args) {
			var err error
			interval, err = time.ParseDuration(args[i+1])
			if err != nil || interval <= 0 {
				fmt.Fprintf(os.Stderr, "Error: Invalid interval: %s\n", args[i+1])
				os.Exit(1)
			}
		}
	}

	cfg, st := loadSite()
	if interval > 0 {
		cfg.Interval = interval
	}

	if running, pid, _ := daemon.IsRunning(); running {
		fmt.Println(styles.ErrorStyle.Render(fmt.Sprintf("✗ Watcher already running with PID %d", pid)))
		os.Exit(1)
	}

	if err := daemon.WritePID(); err != nil {
		fail("Error writing PID file", err)
	}
	defer func() {
		if err := daemon.RemovePID(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove PID file on shutdown: %v\n", err)
		}
	}()
	startTime := time.Now()

	log := logger.Discard()
	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile)
		if err == nil {
			defer cleanup()
			log = l
		}
	}

	log.ConfigLoaded(config.ConfigPath(), cfg.ContentDir, cfg.PublicDir)
	log.Info("watcher started",
		"pid", os.Getpid(),
		"interval", cfg.Interval)

	builder := build.NewBuilder(cfg, st)
	builder.SetLogger(log)

	// Latest build, shared with the dashboard
	var (
		mu   gosync.Mutex
		last *build.Result
	)

	runBuild := func() {
		result, err := builder.Build()
		if err != nil {
			log.Error("build failed", "error", err)
			return
		}
		mu.Lock()
		last = result
		mu.Unlock()

		if err := st.Save(cfg.StateFile); err != nil {
			log.Error("failed to save state", "error", err)
		}
	}

	// Channels for build loop coordination
	stopChan := make(chan bool, 1)
	doneChan := make(chan bool, 1)

	go func() {
		defer func() {
			doneChan <- true
		}()

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		runBuild()

		for {
			select {
			case <-ticker.C:
				runBuild()
			case <-stopChan:
				log.Info("build loop stopping")
				return
			}
		}
	}()

	m := tui.InitWatchModel()
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	sendWatchData := func() {
		data := &tui.WatchData{
			PID:        os.Getpid(),
			StartTime:  startTime,
			Interval:   cfg.Interval,
			ContentDir: cfg.ContentDir,
			PublicDir:  cfg.PublicDir,
		}

		if cfg.LogFile != "" {
			lines, summary := ParseLogFile(cfg.LogFile, 20)
			data.LogLines = lines
			data.LastBuildTime = summary.Time
			data.PagesGenerated = summary.Generated
			data.BuildErrors = summary.Errors
		} else {
			mu.Lock()
			if last != nil {
				data.LastBuildTime = last.EndTime
				data.PagesGenerated = len(last.Generated)
				data.BuildErrors = len(last.Errors)
			}
			mu.Unlock()
		}

		p.Send(tui.WatchMsg{Data: data})
	}

	// Refresh the dashboard every second
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		sendWatchData()
		for range ticker.C {
			sendWatchData()
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		stopChan <- true
		<-doneChan
		os.Exit(1)
	}

	// Dashboard exited ('q' or SIGTERM), stop the build loop gracefully
	stopChan <- true
	<-doneChan
	log.Info("watcher shutdown complete")
}

// Stop stops the running watcher
func Stop() {
	running, pid, _ := daemon.IsRunning()
	if !running {
		fmt.Println(styles.DimStyle.Render("Watcher is not running"))
		return
	}

	fmt.Printf("Stopping watcher (PID %d)...\n", pid)

	if err := daemon.Stop(); err != nil {
		fail("Failed to stop watcher", err)
	}

	// Wait for it to stop
	for i := 0; i < 10; i++ {
		time.Sleep(500 * time.Millisecond)
		running, _, _ = daemon.IsRunning()
		if !running {
			break
		}
	}

	if running {
		fmt.Println(styles.ErrorStyle.Render("✗ Watcher did not stop gracefully"))
		os.Exit(1)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Watcher stopped"))
}
