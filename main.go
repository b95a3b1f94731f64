package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rnakao/marktree/config"
	"github.com/rnakao/marktree/tui"
	"github.com/rnakao/marktree/watch"
)

func main() {
	// Parse flags and configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	// Watch the vault for changes; the TUI still works without a
	// watcher, refresh is just manual then.
	watcher, watchErr := startWatcher(cfg)
	if watcher != nil {
		defer watcher.Stop()
	}
	if watchErr != nil {
		slog.Warn("file watching unavailable", "error", watchErr)
	}

	model := tui.New(cfg, watcher, watchErr)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to a rotating log file. The terminal belongs
// to the TUI, so nothing may log to stdout or stderr.
func setupLogging(cfg *config.Config) {
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err == nil {
			w = &lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    5, // megabytes
				MaxBackups: 2,
			}
		}
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func startWatcher(cfg *config.Config) (*watch.Watcher, error) {
	watcher, err := watch.New(cfg.Root, cfg.Include, cfg.Debounce)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(); err != nil {
		return nil, err
	}
	return watcher, nil
}
