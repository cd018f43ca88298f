package game

import (
	"github.com/Lighty0410/autexousious/internal/character"
	"github.com/Lighty0410/autexousious/internal/clock"
	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/object"
)

// Entity is one character in play.
type Entity struct {
	ID         int
	Controller input.ControllerID
	Def        *character.Definition

	Status     character.Status
	SequenceID character.SequenceID
	Pos        object.Position
	Vel        object.Velocity
	Mirrored   bool
	Grounding  object.Grounding

	// Freeze suspends position updates while active (hit-stop).
	Freeze clock.FrameFreezeClock

	frameIndex    int
	waitClock     clock.LogicClock
	sequenceBegan bool
	sequenceEnded bool
}

func newEntity(id int, controller input.ControllerID, def *character.Definition, pos object.Position, hp character.HealthPoints) *Entity {
	e := &Entity{
		ID:         id,
		Controller: controller,
		Def:        def,
		Status:     character.Status{HP: hp},
		Pos:        pos,
	}
	e.startSequence(character.SequenceStand)
	return e
}

// Frame returns the entity's current sequence frame.
func (e *Entity) Frame() object.Frame {
	return e.Def.Sequence(e.SequenceID).Frames[e.frameIndex]
}

func (e *Entity) startSequence(id character.SequenceID) {
	e.SequenceID = id
	e.frameIndex = 0
	// A frame with wait n is displayed for n+1 ticks.
	e.waitClock = clock.New(e.Frame().Wait + 1)
	e.sequenceBegan = true
	e.sequenceEnded = false
}

// tickFrame advances the frame wait clock, moving to the next frame when
// it completes. It reports whether the sequence ended this tick.
func (e *Entity) tickFrame() bool {
	e.waitClock.Tick()
	if !e.waitClock.IsComplete() {
		return false
	}
	frames := e.Def.Sequence(e.SequenceID).Frames
	if e.frameIndex+1 < len(frames) {
		e.frameIndex++
		e.waitClock = clock.New(frames[e.frameIndex].Wait + 1)
		return false
	}
	e.sequenceEnded = true
	return true
}

// transitionFor checks the sequence's control transitions against the
// controller edges. Press outranks hold outranks release; within each,
// actions are checked in defend, jump, attack, special order.
func transitionFor(t object.Transitions, st input.State) (character.SequenceID, bool) {
	press := []string{t.PressDefend, t.PressJump, t.PressAttack, t.PressSpecial}
	hold := []string{t.HoldDefend, t.HoldJump, t.HoldAttack, t.HoldSpecial}
	release := []string{t.ReleaseDefend, t.ReleaseJump, t.ReleaseAttack, t.ReleaseSpecial}

	for i, a := range input.Actions {
		if press[i] != "" && st.Pressed(a) {
			return character.SequenceID(press[i]), true
		}
	}
	for i, a := range input.Actions {
		if hold[i] != "" && st.Held(a) {
			return character.SequenceID(hold[i]), true
		}
	}
	for i, a := range input.Actions {
		if release[i] != "" && st.Released(a) {
			return character.SequenceID(release[i]), true
		}
	}
	return "", false
}
