package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/beatfall/beatfall/internal/layout"
	"github.com/beatfall/beatfall/internal/platform/tui"
	"github.com/beatfall/beatfall/internal/storage"
)

var (
	flagPlayTrack  string
	flagPlayLayout int64
	flagPlayFile   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a solved layout in the terminal",
	Long: `Replay a layout's ball trajectory frame by frame.

The layout comes from one of three sources:
  --layout <id>   - A stored layout from the database
  --file <path>   - An exported layout YAML
  --track <path>  - Solve the track first, then play the result

Controls:
  Space      - Pause/resume
  R          - Restart
  Q/Ctrl+C   - Quit

Examples:
  beatfall play --layout 3
  beatfall play --file layout.yaml
  beatfall play --track ./track.yaml`,
	Run: runPlayCmd,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayTrack, "track", "", "Solve this track config, then play the result")
	playCmd.Flags().Int64Var(&flagPlayLayout, "layout", 0, "Stored layout ID to play")
	playCmd.Flags().StringVar(&flagPlayFile, "file", "", "Exported layout YAML to play")
}

func runPlayCmd(cmd *cobra.Command, args []string) {
	lay, err := loadPlayLayout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunPlayback(lay, flagFPS, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running playback: %v\n", err)
		os.Exit(1)
	}
}

// loadPlayLayout resolves the layout source flags.
func loadPlayLayout() (layout.Layout, error) {
	switch {
	case flagPlayLayout > 0:
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return layout.Layout{}, err
		}
		defer store.Close()

		entry, err := store.LayoutByID(flagPlayLayout)
		if err != nil {
			return layout.Layout{}, err
		}
		if entry == nil {
			return layout.Layout{}, fmt.Errorf("no stored layout with id %d", flagPlayLayout)
		}
		return layout.Unmarshal(entry.Data)

	case flagPlayFile != "":
		data, err := os.ReadFile(flagPlayFile)
		if err != nil {
			return layout.Layout{}, err
		}
		return layout.Unmarshal(data)

	default:
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "beatfall",
		})
		flagTrack = flagPlayTrack
		return solveTrack(logger)
	}
}
