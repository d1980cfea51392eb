// platformer-window runs the platformer in a desktop window. A window
// reports real key releases, so held keys behave exactly as on a keyboard.
//
// Usage:
//
//	platformer-window [--config world.yaml] [--width 1280] [--height 720]
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/window"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagWidth    int
	flagHeight   int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer-window",
	Short: "Platformer in a desktop window",
	Long: `Run the platformer in a resizable window, one world unit per pixel.

Controls:
  Left/A, Right/D  - Walk
  Up/W/Space       - Jump
  P                - Pause
  R                - Restart
  Esc/Q            - Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.platformer/sessions.db", "Path to sessions database")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to world config YAML")
	rootCmd.Flags().IntVar(&flagWidth, "width", window.DefaultWidth, "Window width in pixels")
	rootCmd.Flags().IntVar(&flagHeight, "height", window.DefaultHeight, "Window height in pixels")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer-window",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}

	world, err := config.Load(expandHome(flagConfig))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	g, err := window.New(world, flagWidth, flagHeight, logger)
	if errors.Is(err, core.ErrNoSurface) {
		return fmt.Errorf("invalid window size %dx%d: %w", flagWidth, flagHeight, err)
	}
	if err != nil {
		return err
	}

	runErr := window.Run(g, "Platformer", flagFPS)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		return runErr
	}
	defer store.Close()
	for _, s := range g.Sessions() {
		if err := store.SaveSession(s); err != nil {
			logger.Error("could not save session", "id", s.ID, "error", err)
			continue
		}
		logger.Info("session saved", "id", s.ID, "ticks", s.Ticks)
	}
	return runErr
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
