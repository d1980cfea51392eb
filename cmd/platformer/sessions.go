package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagPlain bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded sessions",
	Long: `List recorded sessions, newest first.

In a terminal this opens an interactive table: Enter replays the selected
session, X deletes it. With --plain, or when output is not a terminal, a
plain listing is printed instead.

Examples:
  platformer sessions
  platformer sessions --plain`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing")
}

func runSessions(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		if err := printSessions(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	id, err := tui.RunSessions(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
	if id == "" {
		return
	}
	if err := replaySession(store, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printSessions(store *storage.Store) error {
	sessions, err := store.RecentSessions(20)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'platformer play' to record one.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-13s  %-8s  %7s  %6s  %s\n", "ID", "Frontend", "Collision", "Jump", "Ticks", "Events", "Date")
	fmt.Printf("  %-8s  %-8s  %-13s  %-8s  %7s  %6s  %s\n", "--", "--------", "---------", "----", "-----", "------", "----")
	for _, s := range sessions {
		row := tui.SessionRow(s)
		fmt.Printf("  %-8s  %-8s  %-13s  %-8s  %7s  %6s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	fmt.Println()
	fmt.Println("Run 'platformer replay <id>' to verify a session.")
	return nil
}
