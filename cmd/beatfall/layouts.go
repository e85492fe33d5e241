package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beatfall/beatfall/internal/storage"
)

var flagLayoutsLimit int

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List stored layouts",
	Long: `Display the most recently stored layouts.

Examples:
  beatfall layouts
  beatfall layouts --limit 50`,
	Run: runLayouts,
}

func init() {
	layoutsCmd.Flags().IntVar(&flagLayoutsLimit, "limit", 20, "Maximum number of layouts to show")
}

func runLayouts(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening layouts database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.RecentLayouts(flagLayoutsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving layouts: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No layouts stored yet.")
		fmt.Println()
		fmt.Println("Run 'beatfall solve --track <path>' to create one.")
		return
	}

	fmt.Println("Stored layouts:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-20s  %-10s  %-7s  %-10s  %-6s  %s\n",
		"ID", "Name", "Strategy", "Frames", "Platforms", "Walls", "Date")
	fmt.Printf("  %-4s  %-20s  %-10s  %-7s  %-10s  %-6s  %s\n",
		"--", "----", "--------", "------", "---------", "-----", "----")

	for _, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-10s  %-7d  %-10d  %-6d  %s\n",
			e.ID, e.Name, e.Strategy, e.FrameCount, e.PlatformCount, e.WallCount,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'beatfall play --layout <id>' to replay one.")
}
