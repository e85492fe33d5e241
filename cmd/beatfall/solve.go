package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beatfall/beatfall/internal/config"
	"github.com/beatfall/beatfall/internal/layout"
	"github.com/beatfall/beatfall/internal/sim"
	"github.com/beatfall/beatfall/internal/solver"
	"github.com/beatfall/beatfall/internal/storage"
)

var (
	flagTrack    string
	flagStrategy string
	flagSeed     uint64
	flagName     string
	flagExport   string
	flagNoSave   bool
	flagTimeout  int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a track into a platform layout",
	Long: `Search for platform orientations that make the ball bounce on every
beat frame of the track, then carve the destructible walls around the
resulting trajectory.

The solved layout is stored in the layouts database unless --no-save is
given, and can optionally be exported as YAML.

Examples:
  beatfall solve --track ./track.yaml
  beatfall solve --track ./track.yaml --strategy alternate --seed 42
  beatfall solve --track ./track.yaml --export layout.yaml --no-save`,
	Run: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagTrack, "track", "", "Path to track config YAML (default: built-in track)")
	solveCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Search strategy: random or alternate (default: from track config)")
	solveCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Search seed (0 = from track config)")
	solveCmd.Flags().StringVar(&flagName, "name", "", "Layout name (default: track name)")
	solveCmd.Flags().StringVar(&flagExport, "export", "", "Write the solved layout as YAML to this path")
	solveCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the solved layout")
	solveCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Abort the search after this many seconds (0 = no limit)")
}

func runSolve(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "beatfall",
	})

	lay, err := solveTrack(logger)
	if err != nil {
		logger.Fatal("solve failed", "error", err)
	}

	if flagExport != "" {
		data, err := lay.Marshal()
		if err != nil {
			logger.Fatal("export failed", "error", err)
		}
		if err := os.WriteFile(flagExport, data, 0o644); err != nil {
			logger.Fatal("export failed", "error", err)
		}
		logger.Info("layout exported", "path", flagExport)
	}

	if !flagNoSave {
		id, err := saveLayout(lay)
		if err != nil {
			logger.Fatal("save failed", "error", err)
		}
		logger.Info("layout stored", "id", id)
		fmt.Printf("Solved %q: %d platforms, %d walls. Play with 'beatfall play --layout %d'.\n",
			lay.Name, len(lay.Platforms), len(lay.Walls), id)
	} else {
		fmt.Printf("Solved %q: %d platforms, %d walls.\n", lay.Name, len(lay.Platforms), len(lay.Walls))
	}
}

// solveTrack runs the full pipeline: load track, search orientations,
// validate, carve and merge walls.
func solveTrack(logger *log.Logger) (layout.Layout, error) {
	track, err := config.LoadTrack(flagTrack)
	if err != nil {
		return layout.Layout{}, err
	}
	if err := track.Normalize(); err != nil {
		return layout.Layout{}, err
	}

	strategyName := flagStrategy
	if strategyName == "" {
		strategyName = track.Solver.Strategy
	}
	strategy, err := solver.ParseStrategy(strategyName)
	if err != nil {
		return layout.Layout{}, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = track.Solver.Seed
	}

	cfg := track.SimConfig()
	logger.Info("solving track",
		"track", track.Name,
		"targets", len(track.Frames),
		"strategy", strategy,
		"seed", seed,
	)

	ctx := context.Background()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(flagTimeout)*time.Second)
		defer cancel()
	}

	start := time.Now()
	result, err := solver.Solve(ctx, cfg, track.Frames, solver.Params{
		Strategy: strategy,
		Seed:     seed,
		Progress: func(depth, total int) {
			logger.Debug("search progress", "placed", depth, "total", total)
		},
	})
	if err != nil {
		return layout.Layout{}, err
	}
	logger.Info("search done",
		"platforms", len(result.Platforms),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	walls := sim.BuildWalls(cfg, result.Platforms)
	if err := sim.CarveWalls(cfg, result.Platforms, walls, result.MaxFrame()); err != nil {
		return layout.Layout{}, err
	}
	merged := sim.MergeWalls(walls)
	logger.Info("walls carved", "built", len(walls), "merged", len(merged))

	name := flagName
	if name == "" {
		name = track.Name
	}
	return layout.New(name, string(strategy), seed, cfg, result.Frames, result.Platforms, merged), nil
}

// saveLayout stores a solved layout and returns its ID.
func saveLayout(lay layout.Layout) (int64, error) {
	data, err := lay.Marshal()
	if err != nil {
		return 0, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.SaveLayout(storage.LayoutEntry{
		Name:          lay.Name,
		Strategy:      lay.Strategy,
		Seed:          lay.Seed,
		FrameCount:    len(lay.Frames),
		PlatformCount: len(lay.Platforms),
		WallCount:     len(lay.Walls),
		Data:          data,
	})
}
