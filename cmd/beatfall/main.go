// beatfall places bounce platforms for a falling ball so it hits every beat
// of a track, then replays the result in the terminal.
//
// Usage:
//
//	beatfall solve             - Solve a track into a platform layout
//	beatfall play              - Solve (or load) a layout and replay it
//	beatfall layouts           - List stored layouts
//	beatfall browse            - Browse stored layouts interactively
//	beatfall serve             - Start SSH server for remote browsing
//
// Global flags:
//
//	--fps <rate>    - Playback frame rate (default: 60)
//	--db <path>     - Layouts database path (default: ~/.beatfall/layouts.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beatfall",
	Short: "Beatfall - Rhythm-synced bounce layouts in your terminal",
	Long: `Beatfall takes a track's beat frames and searches for a platform
layout that makes a falling ball bounce on every beat exactly.

Available commands:
  solve    - Solve a track into a platform layout
  play     - Solve (or load) a layout and replay it
  layouts  - List stored layouts
  browse   - Browse stored layouts interactively
  serve    - Start SSH server for remote browsing

Examples:
  beatfall solve --track ./track.yaml
  beatfall play --layout 3
  beatfall layouts
  beatfall serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Playback frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beatfall/layouts.db", "Path to layouts database")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}
