package character

// HealthPoints of a character. Zero means knocked out.
type HealthPoints int

// StunPoints accumulate from sp_damage and decay by one each tick.
type StunPoints int

// Stun thresholds selecting the forced reaction sequence when a hit lands.
const (
	// StunFallThreshold and above knocks the character down.
	StunFallThreshold StunPoints = 90
	// StunDazeThreshold and above leaves the character dazed.
	StunDazeThreshold StunPoints = 70
	// StunFlinchHardThreshold and above forces the heavy flinch.
	StunFlinchHardThreshold StunPoints = 40
)

// Reduce decays the stun points by one tick, flooring at zero.
func (sp *StunPoints) Reduce() {
	if *sp > 0 {
		*sp--
	}
}

// SequenceOnHit returns the reaction sequence forced on the target of a
// landed hit, given its stun points after sp_damage was applied.
func SequenceOnHit(sp StunPoints) SequenceID {
	switch {
	case sp >= StunFallThreshold:
		return SequenceFallForwardAscend
	case sp >= StunDazeThreshold:
		return SequenceDazed
	case sp >= StunFlinchHardThreshold:
		return SequenceFlinch1
	default:
		return SequenceFlinch0
	}
}

// Status is the character-specific mutable state.
type Status struct {
	HP         HealthPoints
	SP         StunPoints
	RunCounter RunCounter
}
