// Package character implements character state: health, stun, and the
// per-tick sequence selection that drives a character's behaviour.
package character

import "fmt"

// SequenceID names a character sequence. Values match the sequence keys
// used in character definition files.
type SequenceID string

const (
	// SequenceStand is the default sequence for characters.
	SequenceStand SequenceID = "stand"
	SequenceWalk  SequenceID = "walk"
	SequenceRun   SequenceID = "run"
	// SequenceRunStop plays when a running character stops.
	SequenceRunStop SequenceID = "run_stop"
	// SequenceJump is the crouch before leaving the ground.
	SequenceJump    SequenceID = "jump"
	SequenceJumpOff SequenceID = "jump_off"
	// SequenceJumpAscend is distinct from descend: characters may have
	// different attacks while moving upwards.
	SequenceJumpAscend      SequenceID = "jump_ascend"
	SequenceJumpDescend     SequenceID = "jump_descend"
	SequenceJumpDescendLand SequenceID = "jump_descend_land"
	SequenceStandAttack     SequenceID = "stand_attack"
	// SequenceFlinch0 and SequenceFlinch1 are light and heavy hit
	// reactions, selected by accumulated stun points.
	SequenceFlinch0           SequenceID = "flinch_0"
	SequenceFlinch1           SequenceID = "flinch_1"
	SequenceDazed             SequenceID = "dazed"
	SequenceFallForwardAscend SequenceID = "fall_forward_ascend"
	// SequenceFallForwardDescend also plays when knocked off a platform.
	SequenceFallForwardDescend SequenceID = "fall_forward_descend"
	SequenceFallForwardLand    SequenceID = "fall_forward_land"
	SequenceLieFaceDown        SequenceID = "lie_face_down"
)

// SequenceIDs lists every sequence a character definition must provide.
var SequenceIDs = []SequenceID{
	SequenceStand,
	SequenceWalk,
	SequenceRun,
	SequenceRunStop,
	SequenceJump,
	SequenceJumpOff,
	SequenceJumpAscend,
	SequenceJumpDescend,
	SequenceJumpDescendLand,
	SequenceStandAttack,
	SequenceFlinch0,
	SequenceFlinch1,
	SequenceDazed,
	SequenceFallForwardAscend,
	SequenceFallForwardDescend,
	SequenceFallForwardLand,
	SequenceLieFaceDown,
}

func ParseSequenceID(s string) (SequenceID, error) {
	for _, id := range SequenceIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("character: unknown sequence id %q", s)
}
