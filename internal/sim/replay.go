package sim

import "fmt"

// MissedBounceError reports a replay frame that required a bounce but saw no
// contact. It is the routine pruning signal for the solver, not a fault.
type MissedBounceError struct {
	Frame int
}

func (e *MissedBounceError) Error() string {
	return fmt.Sprintf("sim: bounce expected on frame %d did not happen", e.Frame)
}

// MistimedBounceError reports contact on a frame other than the one the hit
// platform recorded during construction.
type MistimedBounceError struct {
	Frame    int
	Expected int
}

func (e *MistimedBounceError) Error() string {
	return fmt.Sprintf("sim: platform hit on frame %d, expected on frame %d", e.Frame, e.Expected)
}

// Construct runs the construction pass: simulate up to the last target frame
// with an empty platform list, synthesizing one platform per target frame.
// Frames must be sorted ascending; the assignment must cover all of them.
// Construction itself cannot fail; validity is only known after Validate.
func Construct(cfg Config, frames []int, assign Assignment) []*Platform {
	if len(frames) == 0 {
		return nil
	}
	sc := NewConstruction(cfg, frames, assign)
	n := frames[len(frames)-1]
	for i := 0; i < n; i++ {
		sc.Step() // construction steps never error
	}
	return sc.Platforms
}

// Validate replays a fixed platform layout for n frames from the initial
// ball state and confirms it reproduces the recorded bounce timing exactly.
// Returns nil on success, or the first MissedBounceError/MistimedBounceError
// encountered.
func Validate(cfg Config, platforms []*Platform, n int) error {
	sc := NewReplay(cfg, platforms)
	for i := 0; i < n; i++ {
		if _, err := sc.Step(); err != nil {
			return err
		}
	}
	return nil
}
