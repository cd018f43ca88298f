// Package clock provides tick-based timers that drive sequence and
// interaction state transitions.
package clock

// LogicClock counts ticks up to a limit. Sequence frame waits, hit
// repeat delays and hit-stop all run off one of these.
type LogicClock struct {
	// Value is the current tick count.
	Value int
	// Limit is the tick count at which the clock is complete.
	Limit int
}

func New(limit int) LogicClock {
	return LogicClock{Limit: limit}
}

// Tick increments the clock value, saturating at the limit.
func (c *LogicClock) Tick() {
	if c.Value < c.Limit {
		c.Value++
	}
}

func (c LogicClock) IsBeginning() bool {
	return c.Value == 0
}

func (c LogicClock) IsComplete() bool {
	return c.Value >= c.Limit
}

func (c *LogicClock) Reset() {
	c.Value = 0
}

// FrameFreezeClock suspends an entity's position updates while active
// (hit-stop). A zero FrameFreezeClock is inactive.
type FrameFreezeClock struct {
	LogicClock
}

func NewFrameFreezeClock(limit int) FrameFreezeClock {
	return FrameFreezeClock{LogicClock: New(limit)}
}

// Active reports whether the freeze is in effect this tick.
func (c FrameFreezeClock) Active() bool {
	return c.Limit > 0 && !c.IsComplete()
}
