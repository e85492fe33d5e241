package sim

import (
	"errors"
	"testing"

	"github.com/beatfall/beatfall/internal/core"
)

func TestConstructRecordsBounceFrames(t *testing.T) {
	cfg := testConfig()
	frames := []int{10, 20}
	assign := Assignment{10: Horizontal, 20: Vertical}

	platforms := Construct(cfg, frames, assign)
	if len(platforms) != 2 {
		t.Fatalf("Construct returned %d platforms, expected 2", len(platforms))
	}

	// Ball starts at (0, 0) moving (5, 5). The horizontal platform spawns
	// against the frame-10 prediction (50, 50): offset half its thickness on
	// x and half its length on y, biased along the velocity.
	want := core.NewRect(52.5, 60, 20, 5)
	if platforms[0].Rect != want {
		t.Errorf("platform 1 at %+v, expected %+v", platforms[0].Rect, want)
	}
	if f, ok := platforms[0].BounceFrame(); !ok || f != 10 {
		t.Errorf("platform 1 bounce frame = %d, %v, expected 10, true", f, ok)
	}

	// After the first bounce the ball travels (5, -5); the vertical platform
	// catches its right edge on frame 20.
	want = core.NewRect(110, -7.5, 5, 20)
	if platforms[1].Rect != want {
		t.Errorf("platform 2 at %+v, expected %+v", platforms[1].Rect, want)
	}
	if f, ok := platforms[1].BounceFrame(); !ok || f != 20 {
		t.Errorf("platform 2 bounce frame = %d, %v, expected 20, true", f, ok)
	}
}

func TestConstructEmpty(t *testing.T) {
	if got := Construct(testConfig(), nil, nil); got != nil {
		t.Errorf("Construct with no frames = %v, expected nil", got)
	}
}

func TestValidateAcceptsConstructedLayout(t *testing.T) {
	cfg := testConfig()
	for _, assign := range []Assignment{
		{10: Horizontal, 20: Vertical},
		{10: Vertical, 20: Horizontal},
	} {
		platforms := Construct(cfg, []int{10, 20}, assign)
		if err := Validate(cfg, platforms, 20); err != nil {
			t.Errorf("Validate(%v) = %v, expected nil", assign, err)
		}
	}
}

func TestConstructDeterministic(t *testing.T) {
	cfg := testConfig()
	frames := []int{10, 20}
	assign := Assignment{10: Vertical, 20: Horizontal}

	a := Construct(cfg, frames, assign)
	b := Construct(cfg, frames, assign)
	for i := range a {
		if a[i].Rect != b[i].Rect {
			t.Errorf("platform %d differs across runs: %+v vs %+v", i, a[i].Rect, b[i].Rect)
		}
	}
}

func TestConstructUnreachedPlatformStaysUnrecorded(t *testing.T) {
	cfg := testConfig()

	// After a top bounce on frame 10 the ball moves up; a second horizontal
	// platform spawned above it on frame 20 sits just out of reach on its
	// target frame.
	platforms := Construct(cfg, []int{10, 20}, Assignment{10: Horizontal, 20: Horizontal})
	if _, ok := platforms[1].BounceFrame(); ok {
		t.Error("platform 2 should not bounce within the construction window")
	}
	// The replay stays consistent: no recorded expectation, no contact.
	if err := Validate(cfg, platforms, 20); err != nil {
		t.Errorf("Validate = %v, expected nil", err)
	}
}

func TestValidateMissedBounce(t *testing.T) {
	cfg := testConfig()
	// A platform claiming a frame-5 bounce but placed where the ball never
	// goes must fail the replay on exactly that frame.
	p := RestorePlatform(core.NewRect(1000, 1000, 5, 20), Vertical, 5)

	err := Validate(cfg, []*Platform{p}, 5)
	var missed *MissedBounceError
	if !errors.As(err, &missed) {
		t.Fatalf("Validate = %v, expected MissedBounceError", err)
	}
	if missed.Frame != 5 {
		t.Errorf("missed frame = %d, expected 5", missed.Frame)
	}
}

func TestValidateMistimedBounce(t *testing.T) {
	cfg := testConfig()
	built := Construct(cfg, []int{10}, Assignment{10: Horizontal})

	// Same geometry, but the recorded frame is shifted by one: the replay
	// hits on 10 and must report the mismatch.
	p := RestorePlatform(built[0].Rect, Horizontal, 11)
	err := Validate(cfg, []*Platform{p}, 11)
	var mistimed *MistimedBounceError
	if !errors.As(err, &mistimed) {
		t.Fatalf("Validate = %v, expected MistimedBounceError", err)
	}
	if mistimed.Frame != 10 || mistimed.Expected != 11 {
		t.Errorf("mistimed = %+v, expected frame 10 / expected 11", mistimed)
	}
}

func TestSceneCameraFollowsBall(t *testing.T) {
	cfg := testConfig()
	sc := NewConstruction(cfg, nil, nil)

	// The ball must stay within the middle band of the viewport: 40% margins
	// on a 200-unit arena keep X-OffsetX between 80 and 120.
	for i := 0; i < 50; i++ {
		sc.Step()
		relX := sc.Ball.X - sc.OffsetX
		relY := sc.Ball.Y - sc.OffsetY
		if relX < 80-1e-9 || relX > 120+1e-9 {
			t.Fatalf("frame %d: ball outside camera band, relX = %v", sc.Frame, relX)
		}
		if relY < 80-1e-9 || relY > 120+1e-9 {
			t.Fatalf("frame %d: ball outside camera band, relY = %v", sc.Frame, relY)
		}
	}
}

func TestSceneVisibleWalls(t *testing.T) {
	sc := NewConstruction(testConfig(), nil, nil)
	a := NewWall(core.NewRect(0, 0, 5, 5))
	b := NewWall(core.NewRect(10, 0, 5, 5))
	b.Visible = false
	sc.SetWalls([]*Wall{a, b}, true)

	vis := sc.VisibleWalls()
	if len(vis) != 1 || vis[0] != a {
		t.Errorf("VisibleWalls() = %v, expected only the visible wall", vis)
	}
}
