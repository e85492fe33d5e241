package sim

// Sample is one frame of the ball's trajectory through a validated layout.
type Sample struct {
	Frame  int
	X, Y   float64
	VX, VY float64
}

// Trajectory is a lazy, forward-only, restartable sequence of per-frame ball
// samples produced by replaying a validated layout from frame 0.
type Trajectory struct {
	cfg       Config
	platforms []*Platform
	frames    int
	scene     *Scene
	err       error
}

// NewTrajectory creates a trajectory over the given layout, spanning the
// given number of frames.
func NewTrajectory(cfg Config, platforms []*Platform, frames int) *Trajectory {
	t := &Trajectory{cfg: cfg, platforms: platforms, frames: frames}
	t.Restart()
	return t
}

// Next advances one frame and returns its sample. It returns ok=false once
// the trajectory is exhausted, or if the replay diverged from the recorded
// bounce timing (see Err).
func (t *Trajectory) Next() (Sample, bool) {
	if t.err != nil || t.scene.Frame >= t.frames {
		return Sample{}, false
	}
	if _, err := t.scene.Step(); err != nil {
		t.err = err
		return Sample{}, false
	}
	b := t.scene.Ball
	return Sample{
		Frame: t.scene.Frame,
		X:     b.X,
		Y:     b.Y,
		VX:    b.VX,
		VY:    b.VY,
	}, true
}

// Restart rewinds the trajectory to frame 0 by re-running the validated
// layout from the initial ball state.
func (t *Trajectory) Restart() {
	t.scene = NewReplay(t.cfg, t.platforms)
	t.err = nil
}

// Err reports a replay divergence, which cannot happen for a layout that
// passed Validate.
func (t *Trajectory) Err() error {
	return t.err
}
