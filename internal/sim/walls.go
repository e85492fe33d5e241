package sim

import (
	"sort"

	"github.com/beatfall/beatfall/internal/core"
)

// BuildWalls derives the destructible wall set for a finalized platform
// layout: the bounding region of all platforms is partitioned into a grid
// along every platform edge coordinate, and four oversized walls seal the
// arena around it. Returns nil when there are no platforms.
func BuildWalls(cfg Config, platforms []*Platform) []*Wall {
	if len(platforms) == 0 {
		return nil
	}

	xs := make([]float64, 0, len(platforms)*2)
	ys := make([]float64, 0, len(platforms)*2)
	for _, p := range platforms {
		xs = append(xs, p.Rect.X, p.Rect.Right())
		ys = append(ys, p.Rect.Y, p.Rect.Bottom())
	}
	sort.Float64s(xs)
	sort.Float64s(ys)

	var walls []*Wall
	for i := 0; i+1 < len(xs); i++ {
		dx := xs[i+1] - xs[i]
		if dx <= 0 {
			continue
		}
		for j := 0; j+1 < len(ys); j++ {
			dy := ys[j+1] - ys[j]
			if dy <= 0 {
				continue
			}
			walls = append(walls, NewWall(core.NewRect(xs[i], ys[j], dx, dy)))
		}
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	minY, maxY := ys[0], ys[len(ys)-1]

	// Edge walls extend two arena sizes past the platform bounds so the ball
	// can never sweep around them.
	ws := cfg.ArenaW * 2
	hs := cfg.ArenaH * 2
	edges := []core.Rect{
		core.NewRect(minX-ws, minY-hs, ws, hs+(maxY-minY)+hs),
		core.NewRect(maxX, minY-hs, ws, hs+(maxY-minY)+hs),
		core.NewRect(minX-ws, minY-hs, 2*ws+(maxX-minX), hs),
		core.NewRect(minX-ws, maxY, 2*ws+(maxX-minX), hs),
	}
	for _, e := range edges {
		walls = append(walls, NewWall(e))
	}

	return walls
}

// CarveWalls replays a validated layout with the full wall set active,
// marking every wall swept by the ball (or overlapped by a hit platform)
// invisible. The walls slice is mutated in place.
func CarveWalls(cfg Config, platforms []*Platform, walls []*Wall, n int) error {
	sc := NewReplay(cfg, platforms)
	sc.SetWalls(walls, false)
	for i := 0; i < n; i++ {
		if _, err := sc.Step(); err != nil {
			return err
		}
	}
	return nil
}

// MergeRects compacts a rectangle set by repeatedly merging any pair that
// shares a full edge with matching perpendicular dimension: same width and
// vertically adjacent, or same height and horizontally adjacent. Partial
// overlaps or unequal dimensions never merge. The pass runs to a fixpoint
// and preserves total area.
func MergeRects(rects []core.Rect) []core.Rect {
	out := make([]core.Rect, len(rects))
	copy(out, rects)

	for changed := true; changed; {
		changed = false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				m, ok := mergePair(out[i], out[j])
				if !ok {
					continue
				}
				out[i] = m
				out = append(out[:j], out[j+1:]...)
				changed = true
				j--
			}
		}
	}
	return out
}

// mergePair merges two rectangles sharing a full edge, exact-edge only.
func mergePair(a, b core.Rect) (core.Rect, bool) {
	if a.X == b.X && a.W == b.W {
		if a.Y+a.H == b.Y { // a directly above b
			return core.NewRect(a.X, a.Y, a.W, a.H+b.H), true
		}
		if b.Y+b.H == a.Y { // b directly above a
			return core.NewRect(a.X, b.Y, a.W, a.H+b.H), true
		}
	}
	if a.Y == b.Y && a.H == b.H {
		if a.X+a.W == b.X { // a directly left of b
			return core.NewRect(a.X, a.Y, a.W+b.W, a.H), true
		}
		if b.X+b.W == a.X { // b directly left of a
			return core.NewRect(b.X, b.Y, a.W+b.W, a.H), true
		}
	}
	return core.Rect{}, false
}

// MergeWalls compacts the surviving (visible) walls of a carved set into
// merged rectangles.
func MergeWalls(walls []*Wall) []*Wall {
	rects := make([]core.Rect, 0, len(walls))
	for _, w := range walls {
		if w.Visible {
			rects = append(rects, w.Rect)
		}
	}
	merged := MergeRects(rects)
	out := make([]*Wall, len(merged))
	for i, r := range merged {
		out[i] = NewWall(r)
	}
	return out
}
