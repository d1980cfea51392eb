package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the platformer in the terminal.

Controls:
  Left/A, Right/D  - Walk (held)
  Up/W/Space       - Jump (from the ground or a platform top)
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Terminals do not report key releases, so a walking key counts as released
once it stops repeating (input.release_after_ms in the world config).

Every run is recorded; see 'platformer sessions'.

Examples:
  platformer play
  platformer play --config ./world.yaml --watch
  platformer play --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the world when the config file changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "platformer")

	world, err := loadWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	g, err := game.New(world, "tui")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without recording
	} else {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch {
		path := config.Path(expandHome(flagConfig))
		if path == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs a config file; using the built-in world")
		} else if w, watchErr := config.NewWatcher(path); watchErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, watchErr)
		} else {
			defer w.Close()
			opts.Watcher = w
			logger.Info("watching config", "path", w.Path())
		}
	}

	logger.Info("starting",
		"collision", world.Physics.Collision,
		"jump_rule", world.Physics.JumpRule,
		"fps", flagFPS,
	)

	if err := tui.Run(g, flagFPS, opts); err != nil {
		if errors.Is(err, core.ErrNoSurface) {
			fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
