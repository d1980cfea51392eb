// platformer is a terminal platformer physics demo: one player rectangle,
// gravity, and collision against a row of static platforms.
//
// Usage:
//
//	platformer play              - Play in the terminal
//	platformer serve             - Start SSH server for remote play
//	platformer sessions          - Browse recorded sessions
//	platformer replay <id>       - Re-run a recorded session headless
//	platformer policies          - List collision policies and jump rules
//	platformer config            - Print the default world config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.platformer/sessions.db)
//	--config <path>      - World config YAML (default: search order)
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Log file for interactive play
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - a physics demo in your terminal",
	Long: `Platformer is a small side-scrolling physics demo: a red block falls
under gravity, walks left and right and jumps across a row of platforms.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  sessions  - Browse recorded sessions
  replay    - Re-run a recorded session and check it
  policies  - List collision policies and jump rules
  config    - Print the default world config

Examples:
  platformer play
  platformer play --watch --config ./world.yaml
  platformer serve --ssh :2222
  platformer replay 3f2c9a`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.platformer/platformer.log", "Log file used while playing")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the level given by --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens the --log-file for appending. The caller closes it.
func openLogFile() (*os.File, error) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// loadWorld loads the world config from --config or the search order.
func loadWorld() (config.WorldConfig, error) {
	return config.Load(expandHome(flagConfig))
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
