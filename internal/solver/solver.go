// Package solver searches the space of per-target-frame platform
// orientations for one whose constructed layout replays with exact bounce
// timing. The search is depth-first with prefix-validity pruning: every
// partial assignment is re-simulated, and a prefix that misses or mistimes a
// bounce is rejected together with everything that extends it.
//
// Each node re-runs a simulation of length equal to its depth, so worst-case
// total work is exponential in the number of target frames even with
// pruning. Callers should bound frame counts or pass a cancellable context
// for long tracks.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/beatfall/beatfall/internal/sim"
)

// ErrNoValidPlacement is returned when every orientation sequence has been
// exhausted without finding one that validates end-to-end. Callers should
// surface it to the user: changing ball size, speed or platform extents
// usually unblocks the search.
var ErrNoValidPlacement = errors.New("solver: no valid platform placement")

// Strategy selects the order in which a node's two child orientations are
// explored.
type Strategy string

const (
	// StrategyRandom shuffles the child order independently at every node.
	StrategyRandom Strategy = "random"
	// StrategyAlternate tries the opposite of the previous bit first.
	StrategyAlternate Strategy = "alternate"
)

// ParseStrategy validates a strategy name from config or CLI input.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRandom, StrategyAlternate:
		return Strategy(s), nil
	case "":
		return StrategyRandom, nil
	}
	return "", fmt.Errorf("solver: unknown strategy %q", s)
}

// Params configures a solve.
type Params struct {
	Strategy Strategy
	Seed     uint64

	// Progress, when set, is called with the deepest validated prefix length
	// and the total target count. It must not block.
	Progress func(depth, total int)
}

// Result is a successful solve: the full orientation assignment plus the
// platform layout constructed from it.
type Result struct {
	Assignment sim.Assignment
	Platforms  []*sim.Platform
	Frames     []int // sorted, deduplicated target frames
}

// MaxFrame returns the last target frame, the natural simulation length for
// the solved layout.
func (r *Result) MaxFrame() int {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1]
}

// Solve searches for an orientation assignment over the given target frames.
// An empty target set returns an empty assignment immediately. The context
// is checked cooperatively at every node; cancellation surfaces as ctx.Err().
// On exhaustion Solve returns ErrNoValidPlacement.
func Solve(ctx context.Context, cfg sim.Config, targetFrames []int, p Params) (*Result, error) {
	frames := normalizeFrames(targetFrames)
	if len(frames) == 0 {
		return &Result{Assignment: sim.Assignment{}}, nil
	}

	s := &search{
		cfg:    cfg,
		frames: frames,
		params: p,
		rng:    newRNG(p.Seed),
	}

	assign, err := s.solve(ctx, nil)
	if err != nil {
		return nil, err
	}
	if assign == nil {
		return nil, ErrNoValidPlacement
	}

	platforms := sim.Construct(cfg, frames, assign)
	return &Result{Assignment: assign, Platforms: platforms, Frames: frames}, nil
}

type search struct {
	cfg    sim.Config
	frames []int
	params Params
	rng    *rng
	best   int // deepest validated prefix, for progress reporting
}

// solve extends the prefix depth-first. A nil assignment with a nil error
// means the subtree is exhausted; only the top level converts that into
// ErrNoValidPlacement so intermediate nodes keep backtracking.
func (s *search) solve(ctx context.Context, prefix []sim.Orientation) (sim.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(prefix) > 0 {
		platforms, ok := s.simulate(prefix)
		if !ok {
			return nil, nil
		}
		if len(prefix) > s.best {
			s.best = len(prefix)
			if s.params.Progress != nil {
				s.params.Progress(s.best, len(s.frames))
			}
		}
		if len(prefix) == len(s.frames) {
			// A platform the ball never reaches validates vacuously (no
			// recorded expectation to break). A complete solution must
			// bounce for every target, so reject silent platforms here.
			if !allRecorded(platforms) {
				return nil, nil
			}
			return s.assignment(prefix), nil
		}
	}

	for _, o := range s.childOrder(prefix) {
		// Copy-append: sibling branches must never observe each other's
		// speculative extension.
		child := append(prefix[:len(prefix):len(prefix)], o)
		res, err := s.solve(ctx, child)
		if err != nil || res != nil {
			return res, err
		}
	}
	return nil, nil
}

// childOrder decides which orientation to try first at this node.
func (s *search) childOrder(prefix []sim.Orientation) [2]sim.Orientation {
	order := [2]sim.Orientation{sim.Horizontal, sim.Vertical}
	flip := false

	switch s.params.Strategy {
	case StrategyAlternate:
		if len(prefix) == 0 {
			flip = s.rng.coin()
		} else {
			flip = prefix[len(prefix)-1] == sim.Horizontal
		}
	default:
		flip = s.rng.coin()
	}

	if flip {
		order[0], order[1] = order[1], order[0]
	}
	return order
}

// simulate re-runs the partial assignment: construct platforms over the
// covered frames, then replay the fixed layout up to the last covered frame.
// Any missed or mistimed bounce rejects the prefix.
func (s *search) simulate(prefix []sim.Orientation) ([]*sim.Platform, bool) {
	covered := s.frames[:len(prefix)]
	assign := s.assignment(prefix)
	platforms := sim.Construct(s.cfg, covered, assign)
	if sim.Validate(s.cfg, platforms, covered[len(covered)-1]) != nil {
		return nil, false
	}
	return platforms, true
}

func allRecorded(platforms []*sim.Platform) bool {
	for _, p := range platforms {
		if _, ok := p.BounceFrame(); !ok {
			return false
		}
	}
	return true
}

// assignment maps the prefix onto its target frames in ascending order.
func (s *search) assignment(prefix []sim.Orientation) sim.Assignment {
	assign := make(sim.Assignment, len(prefix))
	for i, o := range prefix {
		assign[s.frames[i]] = o
	}
	return assign
}

// normalizeFrames returns a sorted, deduplicated copy of the target frames.
// The frame counter starts at zero and advances before collision checks, so
// frames below one can never bounce and are dropped.
func normalizeFrames(frames []int) []int {
	out := make([]int, 0, len(frames))
	for _, f := range frames {
		if f > 0 {
			out = append(out, f)
		}
	}
	sort.Ints(out)

	dedup := out[:0]
	for i, f := range out {
		if i > 0 && out[i-1] == f {
			continue
		}
		dedup = append(dedup, f)
	}
	return dedup
}
