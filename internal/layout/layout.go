// Package layout defines the serialized form of a solved scene: the platform
// placements with their recorded bounce frames, the carved wall rectangles,
// and the simulation parameters needed to replay it. The simulation core
// owns no persistence format; this package is the YAML bridge between the
// core and storage/export.
package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/beatfall/beatfall/internal/core"
	"github.com/beatfall/beatfall/internal/sim"
)

// Rect mirrors core.Rect with YAML tags.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Platform is the persisted form of a solved platform.
type Platform struct {
	Rect        Rect   `yaml:"rect"`
	Orientation string `yaml:"orientation"`
	BounceFrame int    `yaml:"bounce_frame"`
}

// Params is the persisted form of sim.Config.
type Params struct {
	ArenaW        float64 `yaml:"arena_width"`
	ArenaH        float64 `yaml:"arena_height"`
	BallSize      float64 `yaml:"ball_size"`
	BallSpeed     float64 `yaml:"ball_speed"`
	BallStartX    float64 `yaml:"ball_start_x"`
	BallStartY    float64 `yaml:"ball_start_y"`
	PlatformShort float64 `yaml:"platform_short"`
	PlatformLong  float64 `yaml:"platform_long"`
}

// Layout is a complete solved scene, ready for playback or export.
type Layout struct {
	Name      string     `yaml:"name"`
	Strategy  string     `yaml:"strategy"`
	Seed      uint64     `yaml:"seed"`
	Params    Params     `yaml:"params"`
	Frames    []int      `yaml:"frames"`
	Platforms []Platform `yaml:"platforms"`
	Walls     []Rect     `yaml:"walls"`
}

// New captures a solved scene into its serialized form. Walls should already
// be carved and merged.
func New(name, strategy string, seed uint64, cfg sim.Config, frames []int, platforms []*sim.Platform, walls []*sim.Wall) Layout {
	l := Layout{
		Name:     name,
		Strategy: strategy,
		Seed:     seed,
		Params: Params{
			ArenaW:        cfg.ArenaW,
			ArenaH:        cfg.ArenaH,
			BallSize:      cfg.BallSize,
			BallSpeed:     cfg.BallSpeed,
			BallStartX:    cfg.BallStartX,
			BallStartY:    cfg.BallStartY,
			PlatformShort: cfg.PlatformShort,
			PlatformLong:  cfg.PlatformLong,
		},
		Frames: frames,
	}
	for _, p := range platforms {
		frame := -1
		if f, ok := p.BounceFrame(); ok {
			frame = f
		}
		l.Platforms = append(l.Platforms, Platform{
			Rect:        fromCoreRect(p.Rect),
			Orientation: p.Orientation.String(),
			BounceFrame: frame,
		})
	}
	for _, w := range walls {
		if w.Visible {
			l.Walls = append(l.Walls, fromCoreRect(w.Rect))
		}
	}
	return l
}

// Marshal encodes the layout as YAML.
func (l Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("layout: cannot encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a layout from YAML.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("layout: cannot decode: %w", err)
	}
	return l, nil
}

// SimConfig reconstructs the simulation parameters.
func (l Layout) SimConfig() sim.Config {
	return sim.Config{
		ArenaW:        l.Params.ArenaW,
		ArenaH:        l.Params.ArenaH,
		BallSize:      l.Params.BallSize,
		BallSpeed:     l.Params.BallSpeed,
		BallStartX:    l.Params.BallStartX,
		BallStartY:    l.Params.BallStartY,
		PlatformShort: l.Params.PlatformShort,
		PlatformLong:  l.Params.PlatformLong,
	}
}

// SimPlatforms reconstructs the platform list with recorded bounce frames.
func (l Layout) SimPlatforms() ([]*sim.Platform, error) {
	out := make([]*sim.Platform, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		o, err := sim.ParseOrientation(p.Orientation)
		if err != nil {
			return nil, err
		}
		out = append(out, sim.RestorePlatform(toCoreRect(p.Rect), o, p.BounceFrame))
	}
	return out, nil
}

// SimWalls reconstructs the carved wall list.
func (l Layout) SimWalls() []*sim.Wall {
	out := make([]*sim.Wall, 0, len(l.Walls))
	for _, r := range l.Walls {
		out = append(out, sim.NewWall(toCoreRect(r)))
	}
	return out
}

// MaxFrame returns the last target frame, the playback length.
func (l Layout) MaxFrame() int {
	if len(l.Frames) == 0 {
		return 0
	}
	return l.Frames[len(l.Frames)-1]
}

func fromCoreRect(r core.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func toCoreRect(r Rect) core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}
