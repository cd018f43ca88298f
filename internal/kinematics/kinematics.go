// Package kinematics sets character velocity from the active sequence
// and integrates position.
package kinematics

import (
	"github.com/Lighty0410/autexousious/internal/character"
	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/object"
)

// Per-tick speeds. X/Z walk speeds follow the original character
// kinematics; gravity matches the grounding update.
const (
	WalkXSpeed  = 3.5
	WalkZSpeed  = 2.0
	RunXSpeed   = 6.0
	JumpImpulse = 17.0
	Gravity     = 1.7
)

// UpdateVelocity computes the velocity for the tick from the character's
// sequence and input. Called before integration.
func UpdateVelocity(vel *object.Velocity, seq character.SequenceID, began bool, in input.ControllerInput, mirrored bool, grounding object.Grounding) {
	switch seq {
	case character.SequenceStand, character.SequenceStandAttack,
		character.SequenceFlinch0, character.SequenceFlinch1,
		character.SequenceDazed, character.SequenceLieFaceDown,
		character.SequenceJumpDescendLand, character.SequenceFallForwardLand,
		character.SequenceRunStop, character.SequenceJump:
		vel.X = 0
		vel.Z = 0
	case character.SequenceWalk:
		vel.X = in.XAxis * WalkXSpeed
		vel.Z = in.ZAxis * WalkZSpeed
	case character.SequenceRun:
		direction := 1.0
		if mirrored {
			direction = -1.0
		}
		vel.X = direction * RunXSpeed
		vel.Z = in.ZAxis * WalkZSpeed
	case character.SequenceJumpOff:
		if began {
			vel.Y = JumpImpulse
			vel.X = in.XAxis * WalkXSpeed
			vel.Z = in.ZAxis * WalkZSpeed
		}
	}

	if grounding == object.Airborne {
		vel.Y -= Gravity
	}
}

// Integrate advances position by one tick of velocity.
func Integrate(pos *object.Position, vel object.Velocity) {
	pos.X += vel.X
	pos.Y += vel.Y
	pos.Z += vel.Z
}

// UpdateMirrored flips facing to follow X axis input. Facing only changes
// in sequences where the character may turn around.
func UpdateMirrored(mirrored bool, seq character.SequenceID, in input.ControllerInput) bool {
	switch seq {
	case character.SequenceStand, character.SequenceWalk:
		if in.XAxis > 0 {
			return false
		}
		if in.XAxis < 0 {
			return true
		}
	}
	return mirrored
}
