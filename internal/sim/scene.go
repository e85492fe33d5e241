package sim

import (
	"github.com/beatfall/beatfall/internal/core"
)

// Config holds the simulation parameters for one solve. All fields are in
// world units; velocities are per frame.
type Config struct {
	ArenaW float64
	ArenaH float64

	BallSize   float64
	BallSpeed  float64
	BallStartX float64
	BallStartY float64

	// Platform extents. Short is the cross-axis extent, Long the long-axis
	// extent. The construction pass derives them from the ball size when a
	// config leaves them zero (see config.TrackConfig.SimConfig).
	PlatformShort float64
	PlatformLong  float64
}

// platformDims returns width and height for a platform of the given
// orientation.
func (c Config) platformDims(o Orientation) (w, h float64) {
	if o == Horizontal {
		return c.PlatformLong, c.PlatformShort
	}
	return c.PlatformShort, c.PlatformLong
}

// Scene is one independently owned simulation state: frame counter, ball,
// platform and wall lists, and render-only camera offsets. Construction,
// validation and carve passes each run on a fresh Scene; sibling solver
// branches never share one.
type Scene struct {
	Cfg       Config
	Ball      *Ball
	Platforms []*Platform
	Walls     []*Wall

	// Frame counts completed steps. It starts at 0 and the first call to
	// Step runs frame 1.
	Frame int

	// Camera offsets follow the ball for playback rendering. They have no
	// effect on collision.
	OffsetX float64
	OffsetY float64

	targets Assignment // construction mode: frame -> orientation to spawn
	fixed   bool
	expect  map[int]*Platform
	carved  bool
}

// NewConstruction returns a scene that synthesizes a platform ahead of the
// ball on every target frame. The assignment must cover every frame in
// frames.
func NewConstruction(cfg Config, frames []int, assign Assignment) *Scene {
	targets := make(Assignment, len(frames))
	for _, f := range frames {
		targets[f] = assign[f]
	}
	return &Scene{
		Cfg:     cfg,
		Ball:    NewBall(cfg.BallStartX, cfg.BallStartY, cfg.BallSize, cfg.BallSpeed),
		targets: targets,
	}
}

// NewReplay returns a scene that replays a fixed platform layout and checks
// each step against the platforms' recorded bounce frames.
func NewReplay(cfg Config, platforms []*Platform) *Scene {
	expect := make(map[int]*Platform, len(platforms))
	for _, p := range platforms {
		if f, ok := p.BounceFrame(); ok {
			expect[f] = p
		}
	}
	return &Scene{
		Cfg:       cfg,
		Ball:      NewBall(cfg.BallStartX, cfg.BallStartY, cfg.BallSize, cfg.BallSpeed),
		Platforms: platforms,
		fixed:     true,
		expect:    expect,
	}
}

// SetWalls attaches a wall set to the scene. With carved=false the replay
// carves walls as the ball sweeps over them; with carved=true the walls are
// treated as final and skipped by the collision path entirely.
func (s *Scene) SetWalls(walls []*Wall, carved bool) {
	s.Walls = walls
	s.carved = carved
}

// Step advances the simulation one frame. In construction mode it first
// synthesizes a platform if the new frame is a target frame. In replay mode
// it verifies the step against the recorded bounce expectations and returns
// MissedBounceError or MistimedBounceError on divergence.
func (s *Scene) Step() (*Platform, error) {
	s.Frame++

	if !s.fixed {
		if o, ok := s.targets[s.Frame]; ok {
			s.spawnPlatform(o)
		}
	}

	walls := s.Walls
	if s.carved {
		walls = nil
	}
	hit := s.Ball.Move(s.Platforms, walls, s.Frame)

	s.adjustCamera()

	if !s.fixed {
		return hit, nil
	}
	if hit == nil {
		if _, ok := s.expect[s.Frame]; ok {
			return nil, &MissedBounceError{Frame: s.Frame}
		}
		return nil, nil
	}
	if f, _ := hit.BounceFrame(); f != s.Frame {
		return hit, &MistimedBounceError{Frame: s.Frame, Expected: f}
	}
	return hit, nil
}

// spawnPlatform places a new platform so the ball's predicted position next
// frame lands flush against it. The platform is offset from the prediction
// by half its own extent on each axis, biased in the direction of travel.
func (s *Scene) spawnPlatform(o Orientation) {
	futureX, futureY := s.Ball.PredictPosition(1)
	w, h := s.Cfg.platformDims(o)

	x := futureX + float64(core.Sign(s.Ball.VX))*h/2
	y := futureY + float64(core.Sign(s.Ball.VY))*w/2

	s.Platforms = append(s.Platforms, NewPlatform(core.NewRect(x, y, w, h), o))
}

// adjustCamera keeps the ball within the middle 20% band of the viewport.
// Render-only; collision never reads the offsets.
func (s *Scene) adjustCamera() {
	edgeX := s.Cfg.ArenaW * 0.4
	edgeY := s.Cfg.ArenaH * 0.4

	if s.Ball.X-s.OffsetX < edgeX {
		s.OffsetX = s.Ball.X - edgeX
	} else if s.Ball.X-s.OffsetX > s.Cfg.ArenaW-edgeX {
		s.OffsetX = s.Ball.X - (s.Cfg.ArenaW - edgeX)
	}
	if s.Ball.Y-s.OffsetY < edgeY {
		s.OffsetY = s.Ball.Y - edgeY
	} else if s.Ball.Y-s.OffsetY > s.Cfg.ArenaH-edgeY {
		s.OffsetY = s.Ball.Y - (s.Cfg.ArenaH - edgeY)
	}
}

// VisibleWalls returns the walls still visible in the scene.
func (s *Scene) VisibleWalls() []*Wall {
	out := make([]*Wall, 0, len(s.Walls))
	for _, w := range s.Walls {
		if w.Visible {
			out = append(out, w)
		}
	}
	return out
}
