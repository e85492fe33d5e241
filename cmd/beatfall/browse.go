package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/beatfall/beatfall/internal/platform/tui"
	"github.com/beatfall/beatfall/internal/storage"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored layouts interactively",
	Long: `Open an interactive list of stored layouts. Selecting one replays it;
returning from playback goes back to the list.

Examples:
  beatfall browse
  beatfall browse --db ./layouts.db`,
	Run: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open layouts database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunSession(store, flagFPS, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		os.Exit(1)
	}
}
