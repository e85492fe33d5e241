// Package config provides YAML-based track configuration loading for the
// beatfall solver and playback tools.
package config

import (
	"fmt"
	"sort"

	"github.com/beatfall/beatfall/internal/sim"
)

// TrackConfig contains everything needed to solve one track: the target
// bounce frames plus arena, ball, platform and solver parameters.
type TrackConfig struct {
	Name     string         `yaml:"name"`
	Frames   []int          `yaml:"frames"`
	MaxFrame int            `yaml:"max_frame"` // 0 = unbounded
	Arena    ArenaConfig    `yaml:"arena"`
	Ball     BallConfig     `yaml:"ball"`
	Platform PlatformConfig `yaml:"platform"`
	Solver   SolverConfig   `yaml:"solver"`
}

// ArenaConfig defines the playfield dimensions in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball parameters. StartX/StartY of 0 place the ball
// at the arena center.
type BallConfig struct {
	Size   float64 `yaml:"size"`
	Speed  float64 `yaml:"speed"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// PlatformConfig defines the platform extents. Zero values derive from the
// ball size: short = size/2, long = size*2.
type PlatformConfig struct {
	Short float64 `yaml:"short"`
	Long  float64 `yaml:"long"`
}

// SolverConfig defines the search strategy and seed.
type SolverConfig struct {
	Strategy string `yaml:"strategy"`
	Seed     uint64 `yaml:"seed"`
}

// Normalize sorts and deduplicates the target frames, drops non-positive
// entries, and applies the MaxFrame cap. It returns an error when nothing
// survives.
func (c *TrackConfig) Normalize() error {
	sort.Ints(c.Frames)
	kept := c.Frames[:0]
	for i, f := range c.Frames {
		if f <= 0 {
			continue
		}
		if c.MaxFrame > 0 && f > c.MaxFrame {
			continue
		}
		if i > 0 && c.Frames[i-1] == f {
			continue
		}
		kept = append(kept, f)
	}
	c.Frames = kept
	if len(c.Frames) == 0 {
		return fmt.Errorf("config: track %q has no usable target frames", c.Name)
	}
	return nil
}

// SimConfig derives the simulation parameters: centered ball start when
// unset, platform extents derived from the ball size when unset.
func (c *TrackConfig) SimConfig() sim.Config {
	cfg := sim.Config{
		ArenaW:        c.Arena.Width,
		ArenaH:        c.Arena.Height,
		BallSize:      c.Ball.Size,
		BallSpeed:     c.Ball.Speed,
		BallStartX:    c.Ball.StartX,
		BallStartY:    c.Ball.StartY,
		PlatformShort: c.Platform.Short,
		PlatformLong:  c.Platform.Long,
	}
	if cfg.BallStartX == 0 {
		cfg.BallStartX = (cfg.ArenaW - cfg.BallSize) / 2
	}
	if cfg.BallStartY == 0 {
		cfg.BallStartY = (cfg.ArenaH - cfg.BallSize) / 2
	}
	if cfg.PlatformShort == 0 {
		cfg.PlatformShort = cfg.BallSize / 2
	}
	if cfg.PlatformLong == 0 {
		cfg.PlatformLong = cfg.BallSize * 2
	}
	return cfg
}
