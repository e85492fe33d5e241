package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatfall/beatfall/internal/sim"
)

func testConfig() sim.Config {
	return sim.Config{
		ArenaW:        200,
		ArenaH:        200,
		BallSize:      10,
		BallSpeed:     5,
		PlatformShort: 5,
		PlatformLong:  20,
	}
}

func TestSolveTwoTargets(t *testing.T) {
	cfg := testConfig()

	res, err := Solve(context.Background(), cfg, []int{10, 20}, Params{Seed: 1})
	require.NoError(t, err)
	require.Len(t, res.Platforms, 2)
	assert.Equal(t, []int{10, 20}, res.Frames)
	assert.Equal(t, 20, res.MaxFrame())

	// Repeating an orientation leaves the second platform out of reach on
	// its frame, so the only workable assignments alternate.
	assert.NotEqual(t, res.Assignment[10], res.Assignment[20])

	for i, want := range []int{10, 20} {
		f, ok := res.Platforms[i].BounceFrame()
		require.True(t, ok, "platform %d has no recorded bounce", i)
		assert.Equal(t, want, f, "platform %d bounce frame", i)
	}
	assert.NoError(t, sim.Validate(cfg, res.Platforms, res.MaxFrame()))
}

func TestSolveThreeTargetsWithRecovery(t *testing.T) {
	cfg := testConfig()

	// Targets 20 and 22 are too close for two on-frame bounces from the
	// post-bounce heading, so solutions reach the middle platform a frame
	// late and still land the final bounce exactly.
	res, err := Solve(context.Background(), cfg, []int{10, 20, 22}, Params{Seed: 7})
	require.NoError(t, err)
	require.Len(t, res.Platforms, 3)

	prev := 0
	for i, p := range res.Platforms {
		f, ok := p.BounceFrame()
		require.True(t, ok, "platform %d has no recorded bounce", i)
		assert.Greater(t, f, prev, "bounce frames must be increasing")
		prev = f
	}
	last, _ := res.Platforms[2].BounceFrame()
	assert.Equal(t, 22, last, "final bounce must land on its target frame")
	assert.NoError(t, sim.Validate(cfg, res.Platforms, res.MaxFrame()))
}

func TestSolveSeedDeterminism(t *testing.T) {
	cfg := testConfig()
	frames := []int{10, 20, 22}

	a, err := Solve(context.Background(), cfg, frames, Params{Seed: 42})
	require.NoError(t, err)
	b, err := Solve(context.Background(), cfg, frames, Params{Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, a.Assignment, b.Assignment)
}

func TestSolveStrategies(t *testing.T) {
	cfg := testConfig()
	for _, strat := range []Strategy{StrategyRandom, StrategyAlternate} {
		t.Run(string(strat), func(t *testing.T) {
			res, err := Solve(context.Background(), cfg, []int{10, 20}, Params{Strategy: strat, Seed: 3})
			require.NoError(t, err)
			assert.NoError(t, sim.Validate(cfg, res.Platforms, res.MaxFrame()))
		})
	}
}

func TestSolveEmptyTargets(t *testing.T) {
	res, err := Solve(context.Background(), testConfig(), nil, Params{})
	require.NoError(t, err)
	assert.Empty(t, res.Assignment)
	assert.Empty(t, res.Platforms)
	assert.Equal(t, 0, res.MaxFrame())
}

func TestSolveDropsUnreachableFrames(t *testing.T) {
	// The ball cannot bounce before its first step; non-positive targets are
	// discarded, duplicates collapse.
	res, err := Solve(context.Background(), testConfig(), []int{20, 0, 10, -3, 10}, Params{Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, res.Frames)

	res, err = Solve(context.Background(), testConfig(), []int{0, -1}, Params{})
	require.NoError(t, err)
	assert.Empty(t, res.Assignment)
}

func TestSolveNoValidPlacement(t *testing.T) {
	// Three back-to-back targets: after two bounces both velocity components
	// point away from every reachable placement, and the last frame leaves
	// no room for a late hit.
	_, err := Solve(context.Background(), testConfig(), []int{10, 11, 12}, Params{Seed: 5})
	assert.ErrorIs(t, err, ErrNoValidPlacement)
}

func TestSolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, testConfig(), []int{10, 20}, Params{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveProgress(t *testing.T) {
	var depths []int
	p := Params{
		Seed: 1,
		Progress: func(depth, total int) {
			assert.Equal(t, 2, total)
			depths = append(depths, depth)
		},
	}

	_, err := Solve(context.Background(), testConfig(), []int{10, 20}, p)
	require.NoError(t, err)
	require.NotEmpty(t, depths)
	assert.Equal(t, 2, depths[len(depths)-1])
	for i := 1; i < len(depths); i++ {
		assert.Greater(t, depths[i], depths[i-1], "progress depth must only deepen")
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("random")
	require.NoError(t, err)
	assert.Equal(t, StrategyRandom, s)

	s, err = ParseStrategy("alternate")
	require.NoError(t, err)
	assert.Equal(t, StrategyAlternate, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyRandom, s)

	_, err = ParseStrategy("greedy")
	assert.Error(t, err)
}
