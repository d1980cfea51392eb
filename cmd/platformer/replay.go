package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/journal"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session headless",
	Long: `Rebuild a recorded session's world, apply its journal tick by tick and
check that the player ends exactly where it did when recorded.

The id may be any unique prefix shown by 'platformer sessions'.

Examples:
  platformer replay 3f2c9a
  platformer replay 3f2c9a --events`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

var flagShowEvents bool

func init() {
	replayCmd.Flags().BoolVar(&flagShowEvents, "events", false, "Print the recorded events")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "platformer")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := replaySession(store, args[0]); err != nil {
		logger.Error("replay failed", "id", args[0], "error", err)
		store.Close()
		os.Exit(1)
	}
}

// replaySession verifies one stored session and prints a report.
func replaySession(store *storage.Store, prefix string) error {
	id, err := store.ResolveID(prefix)
	if err != nil {
		return err
	}
	sess, err := store.Session(id)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s\n", sess.ID)
	fmt.Printf("  Frontend:  %s\n", sess.Frontend)
	fmt.Printf("  Recorded:  %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Rules:     %s / %s\n", sess.Policy, sess.JumpRule)
	fmt.Printf("  Viewport:  %.0fx%.0f\n", sess.Viewport.W, sess.Viewport.H)
	fmt.Printf("  Ticks:     %d\n", sess.Ticks)
	fmt.Printf("  Events:    %d\n", len(sess.Events))

	if flagShowEvents {
		fmt.Println()
		for _, e := range sess.Events {
			fmt.Println("  " + formatEvent(e))
		}
	}

	p, err := journal.Verify(sess)
	fmt.Println()
	if errors.Is(err, journal.ErrDiverged) {
		fmt.Printf("DIVERGED: replay ended at (%.1f, %.1f), recorded (%.1f, %.1f)\n",
			p.Position.X, p.Position.Y, sess.FinalPosition.X, sess.FinalPosition.Y)
		return err
	}
	if err != nil {
		return err
	}
	fmt.Printf("OK: player ends at (%.1f, %.1f) moving (%.1f, %.1f)\n",
		p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
	return nil
}

func formatEvent(e journal.Event) string {
	if e.Kind == journal.KindResize {
		return fmt.Sprintf("%6d  %-7s  %.0fx%.0f", e.Tick, e.Kind, e.W, e.H)
	}
	return fmt.Sprintf("%6d  %-7s  %s", e.Tick, e.Kind, e.Direction)
}
