package character

import (
	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/object"
)

// UpdateComponents is the read-only view a sequence handler works on.
type UpdateComponents struct {
	Input         input.State
	HP            HealthPoints
	SequenceID    SequenceID
	SequenceEnded bool
	Velocity      object.Velocity
	Mirrored      bool
	Grounding     object.Grounding
	RunCounter    RunCounter
}

// ForwardX reports whether the X axis is deflected towards the facing
// direction.
func (c UpdateComponents) ForwardX() bool {
	x := c.Input.Current.XAxis
	if c.Mirrored {
		return x < 0
	}
	return x > 0
}

func (c UpdateComponents) hasDirectionInput() bool {
	return c.Input.Current.XAxis != 0 || c.Input.Current.ZAxis != 0
}

// handlerFunc returns the sequence to switch to, or ok=false to stay.
type handlerFunc func(UpdateComponents) (SequenceID, bool)

// UpdateSequence runs the handler chain for the character's current
// sequence. It mirrors the original behaviour dispatch: per-sequence
// handlers composed of shared checks, first decisive check wins.
func UpdateSequence(c UpdateComponents) (SequenceID, bool) {
	h, ok := handlers[c.SequenceID]
	if !ok {
		return "", false
	}
	return h(c)
}

var handlers map[SequenceID]handlerFunc

func init() {
	handlers = map[SequenceID]handlerFunc{
		SequenceStand:              chain(aliveCheck, airborneCheck, standInputCheck),
		SequenceWalk:               chain(aliveCheck, airborneCheck, walkInputCheck),
		SequenceRun:                chain(aliveCheck, airborneCheck, runStopCheck, restartOnEnd(SequenceRun)),
		SequenceRunStop:            chain(aliveCheck, airborneCheck, onEnd(SequenceStand)),
		SequenceJump:               chain(aliveCheck, onEnd(SequenceJumpOff)),
		SequenceJumpOff:            chain(aliveCheck, onEnd(SequenceJumpAscend)),
		SequenceJumpAscend:         chain(aliveCheck, descendCheck(SequenceJumpDescend), onEnd(SequenceJumpDescend)),
		SequenceJumpDescend:        chain(aliveCheck, landCheck(SequenceJumpDescendLand)),
		SequenceJumpDescendLand:    chain(aliveCheck, onEnd(SequenceStand)),
		SequenceStandAttack:        chain(aliveCheck, onEnd(SequenceStand)),
		SequenceFlinch0:            chain(aliveCheck, onEnd(SequenceStand)),
		SequenceFlinch1:            chain(aliveCheck, onEnd(SequenceStand)),
		SequenceDazed:              chain(aliveCheck, onEnd(SequenceStand)),
		SequenceFallForwardAscend:  chain(descendCheck(SequenceFallForwardDescend), onEnd(SequenceFallForwardDescend)),
		SequenceFallForwardDescend: chain(landCheck(SequenceFallForwardLand)),
		SequenceFallForwardLand:    chain(onEnd(SequenceLieFaceDown)),
		SequenceLieFaceDown:        chain(getUpCheck),
	}
}

// chain folds checks, returning the first decisive transition.
func chain(checks ...handlerFunc) handlerFunc {
	return func(c UpdateComponents) (SequenceID, bool) {
		for _, check := range checks {
			if next, ok := check(c); ok {
				return next, true
			}
		}
		return "", false
	}
}

// aliveCheck forces the knock-down chain when health is exhausted.
func aliveCheck(c UpdateComponents) (SequenceID, bool) {
	if c.HP <= 0 {
		return SequenceFallForwardAscend, true
	}
	return "", false
}

// airborneCheck forces the descend sequence when walking off an edge.
func airborneCheck(c UpdateComponents) (SequenceID, bool) {
	if c.Grounding == object.Airborne {
		return SequenceJumpDescend, true
	}
	return "", false
}

func standInputCheck(c UpdateComponents) (SequenceID, bool) {
	if c.Input.Pressed(input.ActionJump) {
		return SequenceJump, true
	}
	if c.Input.Pressed(input.ActionAttack) {
		return SequenceStandAttack, true
	}
	if c.Input.Current.XAxis != 0 {
		if c.ForwardX() && c.RunCounter.CanRun() {
			return SequenceRun, true
		}
		return SequenceWalk, true
	}
	if c.Input.Current.ZAxis != 0 {
		return SequenceWalk, true
	}
	return "", false
}

func walkInputCheck(c UpdateComponents) (SequenceID, bool) {
	if c.Input.Pressed(input.ActionJump) {
		return SequenceJump, true
	}
	if c.Input.Pressed(input.ActionAttack) {
		return SequenceStandAttack, true
	}
	if !c.hasDirectionInput() {
		return SequenceStand, true
	}
	if c.SequenceEnded {
		return SequenceWalk, true
	}
	return "", false
}

// runStopCheck ends the run when forward input is lost or reversed.
func runStopCheck(c UpdateComponents) (SequenceID, bool) {
	if c.Input.Current.XAxis == 0 || !c.ForwardX() {
		return SequenceRunStop, true
	}
	return "", false
}

func restartOnEnd(id SequenceID) handlerFunc {
	return func(c UpdateComponents) (SequenceID, bool) {
		if c.SequenceEnded {
			return id, true
		}
		return "", false
	}
}

func onEnd(next SequenceID) handlerFunc {
	return func(c UpdateComponents) (SequenceID, bool) {
		if c.SequenceEnded {
			return next, true
		}
		return "", false
	}
}

// descendCheck switches when upward velocity is spent.
func descendCheck(next SequenceID) handlerFunc {
	return func(c UpdateComponents) (SequenceID, bool) {
		if c.Velocity.Y <= 0 {
			return next, true
		}
		return "", false
	}
}

func landCheck(next SequenceID) handlerFunc {
	return func(c UpdateComponents) (SequenceID, bool) {
		if c.Grounding == object.OnGround {
			return next, true
		}
		return "", false
	}
}

// getUpCheck keeps knocked-out characters down.
func getUpCheck(c UpdateComponents) (SequenceID, bool) {
	if c.SequenceEnded && c.HP > 0 {
		return SequenceStand, true
	}
	return "", false
}
