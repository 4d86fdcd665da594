package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlenz/lsview/internal/config"
	"github.com/mlenz/lsview/internal/logger"
	"github.com/mlenz/lsview/internal/watch"
)

var (
	flagShowHidden bool
	flagDualPane   bool
	flagNoWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "lsview [directory]",
	Short: "Browse long-format directory listings with dired-style sorting",
	Long: `lsview renders real ls output in a terminal UI. Sort order and dotfile
visibility are per pane and every redraw comes from a fresh ls run, so what
you see is exactly what ls prints.`,
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagShowHidden, "show-hidden", false, "start with hidden files visible")
	rootCmd.Flags().BoolVar(&flagDualPane, "dual-pane", false, "start with two panes")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "disable the directory watcher")
}

func run(cmd *cobra.Command, args []string) error {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
	}
	defer logger.Close()

	cfg := config.Load()
	if cmd.Flags().Changed("show-hidden") {
		cfg.ShowHidden = flagShowHidden
	}
	if cmd.Flags().Changed("dual-pane") {
		cfg.DualPane = flagDualPane
	}
	if flagNoWatch {
		cfg.WatchEnabled = false
	}

	startDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if len(args) == 1 {
		startDir = expandHome(args[0])
	}
	startDir, err = filepath.Abs(startDir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", startDir, err)
	}

	var watcher *watch.Watcher
	if cfg.WatchEnabled {
		watcher, err = watch.New(cfg.IgnorePatterns)
		if err != nil {
			logger.Warn("watcher unavailable: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	m, err := initialModel(cfg, startDir, watcher)
	if err != nil {
		return fmt.Errorf("open %s: %w", startDir, err)
	}

	logger.Info("starting in %s", startDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
