package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	vfs "github.com/mwantia/kvfs"
	"github.com/mwantia/kvfs/cli/config"
	"github.com/mwantia/kvfs/cli/tui"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/metrics"
	"github.com/mwantia/kvfs/system"
)

func main() {
	cfg := config.MustLoad(config.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The terminal belongs to the TUI, logs only go to the file.
	logger := log.NewLogger("vfs", cfg.LogLevel(), cfg.Log.File, true)
	defer logger.Close()

	collab := system.Defaults()
	collab.Colors = system.NewPalette(cfg.Colors.Foreground, cfg.Colors.Background)

	m := metrics.New()
	if cfg.Metrics.Address != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Address); err != nil {
				logger.Error("Metrics endpoint stopped: %v", err)
			}
		}()
		logger.Info("Serving metrics on %s", cfg.Metrics.Address)
	}

	fs, err := vfs.Boot(ctx,
		vfs.WithLogger(logger),
		vfs.WithMetrics(m),
		vfs.WithStorage(cfg.Storage.Driver),
		vfs.WithCollaborators(collab),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to boot: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := fs.Shutdown(context.Background()); err != nil {
			logger.Error("Shutdown failed: %v", err)
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx, fs), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error: %v", err)
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
	}
}
