package character

// RunCounterResetTicks is the window, in ticks, to re-press forward after
// releasing it for the walk to break into a run.
const RunCounterResetTicks = 15

type RunCounterState int

const (
	// RunUnused means no walk has primed the counter.
	RunUnused RunCounterState = iota
	// RunIncrease counts ticks walked forward without release.
	RunIncrease
	// RunDecrease counts down the re-press window after a release.
	RunDecrease
	// RunExceeded means forward was held too long; the walk cannot break
	// into a run until the input is released.
	RunExceeded
)

// RunCounter tracks the double-tap-forward detection for running.
type RunCounter struct {
	State RunCounterState
	Ticks int
}

// TickWalk advances the counter for a tick spent walking forward.
func (rc *RunCounter) TickWalk() {
	switch rc.State {
	case RunUnused, RunDecrease:
		rc.State = RunIncrease
		rc.Ticks = RunCounterResetTicks
	case RunIncrease:
		if rc.Ticks > 0 {
			rc.Ticks--
		} else {
			rc.State = RunExceeded
		}
	}
}

// TickIdle advances the counter for a tick without forward input.
func (rc *RunCounter) TickIdle() {
	switch rc.State {
	case RunIncrease, RunExceeded:
		rc.State = RunDecrease
		rc.Ticks = RunCounterResetTicks
	case RunDecrease:
		if rc.Ticks > 0 {
			rc.Ticks--
		} else {
			rc.State = RunUnused
		}
	}
}

// CanRun reports whether a forward press this tick should start a run:
// the counter is inside the re-press window.
func (rc RunCounter) CanRun() bool {
	return rc.State == RunDecrease
}
