// Package sim implements the deterministic bounce simulation: a point-mass
// ball advanced one discrete step per frame, rigid axis-aligned platforms
// resolved by minimal penetration, and destructible walls carved by the
// ball's swept path. All passes over the same inputs produce bit-identical
// trajectories; the package performs no I/O.
package sim

import (
	"fmt"
	"math"

	"github.com/beatfall/beatfall/internal/core"
)

// Orientation selects a platform's long axis.
type Orientation int

const (
	// Vertical platforms are tall and reflect the ball's horizontal velocity.
	Vertical Orientation = iota
	// Horizontal platforms are wide and reflect the ball's vertical velocity.
	Horizontal
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation converts a string produced by String back to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Vertical, fmt.Errorf("sim: unknown orientation %q", s)
}

// Assignment maps a target frame to the orientation of the platform
// synthesized on that frame. This is exactly what the solver searches over.
type Assignment map[int]Orientation

// Platform is a rigid bounce obstacle. Its geometry and orientation are
// immutable after construction; the bounce frame is written at most once,
// on the first resolved hit.
type Platform struct {
	Rect        core.Rect
	Orientation Orientation

	bounceFrame int
}

// NewPlatform creates a platform with no recorded bounce frame.
func NewPlatform(r core.Rect, o Orientation) *Platform {
	return &Platform{Rect: r, Orientation: o, bounceFrame: -1}
}

// RestorePlatform recreates a platform from persisted state, including a
// previously recorded bounce frame. Pass a negative frame for "unset".
func RestorePlatform(r core.Rect, o Orientation, bounceFrame int) *Platform {
	if bounceFrame < 0 {
		bounceFrame = -1
	}
	return &Platform{Rect: r, Orientation: o, bounceFrame: bounceFrame}
}

// RecordBounce stores the frame of the platform's first resolved hit.
// Later hits on the same platform do not overwrite it.
func (p *Platform) RecordBounce(frame int) {
	if p.bounceFrame >= 0 {
		return
	}
	p.bounceFrame = frame
}

// BounceFrame returns the recorded bounce frame and whether one was recorded.
func (p *Platform) BounceFrame() (int, bool) {
	if p.bounceFrame < 0 {
		return 0, false
	}
	return p.bounceFrame, true
}

// Wall is a destructible cell of the arena filling. It starts visible and is
// carved (hidden) when the ball's swept region or a hit platform overlaps it.
type Wall struct {
	Rect    core.Rect
	Visible bool
}

// NewWall creates a visible wall covering the given rectangle.
func NewWall(r core.Rect) *Wall {
	return &Wall{Rect: r, Visible: true}
}

// pinned identifies the carve-rectangle corner locked in place while the
// ball moves away from it.
type pinned int

const (
	pinTopLeft pinned = iota
	pinTopRight
	pinBottomLeft
	pinBottomRight
)

// Ball is the simulated point-mass: a square bounding box moving with a
// constant-magnitude velocity on each axis. It also tracks the carve
// rectangle approximating its swept path since the last bounce.
type Ball struct {
	X, Y   float64 // Top-left of the bounding square
	Size   float64
	VX, VY float64

	carveL, carveT float64
	carveR, carveB float64
	carvePin       pinned
}

// NewBall creates a ball at (x, y) moving down-right at the given speed on
// both axes.
func NewBall(x, y, size, speed float64) *Ball {
	b := &Ball{X: x, Y: y, Size: size, VX: speed, VY: speed}
	b.resetCarve()
	return b
}

// Bounds returns the ball's bounding square.
func (b *Ball) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.Size, b.Size)
}

// PredictPosition returns the ball's position the given number of frames
// ahead, assuming no collision.
func (b *Ball) PredictPosition(frames int) (float64, float64) {
	return b.X + b.VX*float64(frames), b.Y + b.VY*float64(frames)
}

// Move advances the ball one step: resolve contact against the first
// overlapping platform in list order, apply velocity, then carve any walls
// overlapped by the swept region. Returns the hit platform, if any.
func (b *Ball) Move(platforms []*Platform, walls []*Wall, frame int) *Platform {
	next := core.NewRect(b.X+b.VX, b.Y+b.VY, b.Size, b.Size)

	var hit *Platform
	for _, p := range platforms {
		if !next.Overlaps(p.Rect) {
			continue
		}

		// Penetration depth on each side at the next position.
		overlapLeft := next.Right() - p.Rect.X
		overlapRight := p.Rect.Right() - next.X
		overlapTop := next.Bottom() - p.Rect.Y
		overlapBottom := p.Rect.Bottom() - next.Y

		min := overlapLeft
		if overlapRight < min {
			min = overlapRight
		}
		if overlapTop < min {
			min = overlapTop
		}
		if overlapBottom < min {
			min = overlapBottom
		}

		// Resolve on the least-penetrated axis: force the velocity sign away
		// from the platform and reposition flush against the struck edge.
		// Ties resolve in left, right, top, bottom order.
		switch min {
		case overlapLeft:
			b.VX = -math.Abs(b.VX)
			b.X = p.Rect.X - b.Size
		case overlapRight:
			b.VX = math.Abs(b.VX)
			b.X = p.Rect.Right()
		case overlapTop:
			b.VY = -math.Abs(b.VY)
			b.Y = p.Rect.Y - b.Size
		default:
			b.VY = math.Abs(b.VY)
			b.Y = p.Rect.Bottom()
		}

		p.RecordBounce(frame)
		hit = p
		break // first hit wins, not closest
	}

	b.X += b.VX
	b.Y += b.VY

	if len(walls) == 0 {
		return hit
	}

	// The carve rectangle restarts from the bounce point whenever the ball
	// changes direction, so it never sweeps back over the path already cut.
	if hit != nil {
		b.resetCarve()
	}

	carve := b.CarveRect()
	for _, w := range walls {
		if !w.Visible {
			continue
		}
		if carve.Overlaps(w.Rect) {
			w.Visible = false
			continue
		}
		if hit != nil && hit.Rect.OverlapsStrict(w.Rect) {
			w.Visible = false
		}
	}

	b.extendCarve()
	return hit
}

// resetCarve re-seeds the carve rectangle at the ball's current bounds and
// pins the corner the ball is moving away from.
func (b *Ball) resetCarve() {
	b.carveL = b.X
	b.carveT = b.Y
	b.carveR = b.X + b.Size
	b.carveB = b.Y + b.Size

	if b.VX > 0 {
		if b.VY > 0 {
			b.carvePin = pinTopLeft
		} else {
			b.carvePin = pinBottomLeft
		}
	} else {
		if b.VY > 0 {
			b.carvePin = pinTopRight
		} else {
			b.carvePin = pinBottomRight
		}
	}
}

// extendCarve advances the carve rectangle's moving corner one unit past the
// ball's current bounds, keeping the pinned corner fixed.
func (b *Ball) extendCarve() {
	switch b.carvePin {
	case pinTopLeft:
		b.carveR = b.X + b.Size + 1
		b.carveB = b.Y + b.Size + 1
	case pinTopRight:
		b.carveL = b.X - 1
		b.carveB = b.Y + b.Size + 1
	case pinBottomLeft:
		b.carveR = b.X + b.Size + 1
		b.carveT = b.Y - 1
	case pinBottomRight:
		b.carveL = b.X - 1
		b.carveT = b.Y - 1
	}
}

// CarveRect returns the current swept region between the last bounce (or
// spawn) and the ball's current position.
func (b *Ball) CarveRect() core.Rect {
	return core.NewRect(b.carveL, b.carveT, b.carveR-b.carveL, b.carveB-b.carveT)
}
