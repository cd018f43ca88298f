package character

import (
	"testing"

	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/object"
)

func components(seq SequenceID) UpdateComponents {
	return UpdateComponents{
		Input:      input.State{},
		HP:         100,
		SequenceID: seq,
		Grounding:  object.OnGround,
	}
}

func withX(c UpdateComponents, x float64) UpdateComponents {
	c.Input.Current.XAxis = x
	return c
}

func assertTransition(t *testing.T, c UpdateComponents, want SequenceID) {
	t.Helper()
	got, ok := UpdateSequence(c)
	if !ok {
		t.Fatalf("UpdateSequence(%s) = no transition, want %s", c.SequenceID, want)
	}
	if got != want {
		t.Fatalf("UpdateSequence(%s) = %s, want %s", c.SequenceID, got, want)
	}
}

func assertNoTransition(t *testing.T, c UpdateComponents) {
	t.Helper()
	if got, ok := UpdateSequence(c); ok {
		t.Fatalf("UpdateSequence(%s) = %s, want no transition", c.SequenceID, got)
	}
}

func TestStand(t *testing.T) {
	t.Run("stays standing with no input", func(t *testing.T) {
		assertNoTransition(t, components(SequenceStand))
	})

	t.Run("walks on x axis input", func(t *testing.T) {
		assertTransition(t, withX(components(SequenceStand), 1), SequenceWalk)
	})

	t.Run("walks on z axis input", func(t *testing.T) {
		c := components(SequenceStand)
		c.Input.Current.ZAxis = -1
		assertTransition(t, c, SequenceWalk)
	})

	t.Run("runs on forward press within re-press window", func(t *testing.T) {
		c := withX(components(SequenceStand), 1)
		c.RunCounter = RunCounter{State: RunDecrease, Ticks: 5}
		assertTransition(t, c, SequenceRun)
	})

	t.Run("walks on backward press within re-press window", func(t *testing.T) {
		c := withX(components(SequenceStand), -1)
		c.RunCounter = RunCounter{State: RunDecrease, Ticks: 5}
		assertTransition(t, c, SequenceWalk)
	})

	t.Run("runs on mirrored forward press", func(t *testing.T) {
		c := withX(components(SequenceStand), -1)
		c.Mirrored = true
		c.RunCounter = RunCounter{State: RunDecrease, Ticks: 5}
		assertTransition(t, c, SequenceRun)
	})

	t.Run("jumps on jump press", func(t *testing.T) {
		c := components(SequenceStand)
		c.Input.Current.Jump = true
		assertTransition(t, c, SequenceJump)
	})

	t.Run("attacks on attack press", func(t *testing.T) {
		c := components(SequenceStand)
		c.Input.Current.Attack = true
		assertTransition(t, c, SequenceStandAttack)
	})

	t.Run("falls when dead", func(t *testing.T) {
		c := components(SequenceStand)
		c.HP = 0
		assertTransition(t, c, SequenceFallForwardAscend)
	})

	t.Run("descends when airborne", func(t *testing.T) {
		c := components(SequenceStand)
		c.Grounding = object.Airborne
		assertTransition(t, c, SequenceJumpDescend)
	})
}

func TestWalk(t *testing.T) {
	t.Run("reverts to stand without input", func(t *testing.T) {
		assertTransition(t, components(SequenceWalk), SequenceStand)
	})

	t.Run("keeps walking on input", func(t *testing.T) {
		assertNoTransition(t, withX(components(SequenceWalk), 1))
	})

	t.Run("restarts walk when sequence ends", func(t *testing.T) {
		c := withX(components(SequenceWalk), 1)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceWalk)
	})

	t.Run("jumps on jump press", func(t *testing.T) {
		c := withX(components(SequenceWalk), 1)
		c.Input.Current.Jump = true
		assertTransition(t, c, SequenceJump)
	})
}

func TestRun(t *testing.T) {
	t.Run("jump descend when airborne", func(t *testing.T) {
		c := withX(components(SequenceRun), 1)
		c.Grounding = object.Airborne
		assertTransition(t, c, SequenceJumpDescend)
	})

	t.Run("reverts to run stop when no input", func(t *testing.T) {
		assertTransition(t, components(SequenceRun), SequenceRunStop)
	})

	t.Run("keeps running when x axis positive and non mirrored", func(t *testing.T) {
		assertNoTransition(t, withX(components(SequenceRun), 1))
	})

	t.Run("keeps running when x axis negative and mirrored", func(t *testing.T) {
		c := withX(components(SequenceRun), -1)
		c.Mirrored = true
		assertNoTransition(t, c)
	})

	t.Run("restarts run when sequence ended", func(t *testing.T) {
		for _, tc := range []struct {
			x        float64
			mirrored bool
		}{{1, false}, {-1, true}} {
			c := withX(components(SequenceRun), tc.x)
			c.Mirrored = tc.mirrored
			c.SequenceEnded = true
			assertTransition(t, c, SequenceRun)
		}
	})

	t.Run("reverts to run stop when x axis opposes facing", func(t *testing.T) {
		c := withX(components(SequenceRun), -1)
		assertTransition(t, c, SequenceRunStop)

		c = withX(components(SequenceRun), 1)
		c.Mirrored = true
		assertTransition(t, c, SequenceRunStop)
	})
}

func TestJumpChain(t *testing.T) {
	t.Run("jump to jump off on end", func(t *testing.T) {
		c := components(SequenceJump)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceJumpOff)
	})

	t.Run("jump off to ascend on end", func(t *testing.T) {
		c := components(SequenceJumpOff)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceJumpAscend)
	})

	t.Run("ascend to descend when velocity spent", func(t *testing.T) {
		c := components(SequenceJumpAscend)
		c.Velocity.Y = -0.5
		c.Grounding = object.Airborne
		assertTransition(t, c, SequenceJumpDescend)
	})

	t.Run("ascend holds while rising", func(t *testing.T) {
		c := components(SequenceJumpAscend)
		c.Velocity.Y = 4
		c.Grounding = object.Airborne
		assertNoTransition(t, c)
	})

	t.Run("descend lands when grounded", func(t *testing.T) {
		c := components(SequenceJumpDescend)
		assertTransition(t, c, SequenceJumpDescendLand)
	})

	t.Run("descend holds while airborne", func(t *testing.T) {
		c := components(SequenceJumpDescend)
		c.Grounding = object.Airborne
		assertNoTransition(t, c)
	})

	t.Run("land to stand on end", func(t *testing.T) {
		c := components(SequenceJumpDescendLand)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceStand)
	})
}

func TestFallChain(t *testing.T) {
	t.Run("fall ascend to descend when velocity spent", func(t *testing.T) {
		c := components(SequenceFallForwardAscend)
		c.HP = 0
		c.Velocity.Y = -1
		c.Grounding = object.Airborne
		assertTransition(t, c, SequenceFallForwardDescend)
	})

	t.Run("fall descend lands", func(t *testing.T) {
		c := components(SequenceFallForwardDescend)
		c.HP = 0
		assertTransition(t, c, SequenceFallForwardLand)
	})

	t.Run("fall land to lie face down", func(t *testing.T) {
		c := components(SequenceFallForwardLand)
		c.HP = 0
		c.SequenceEnded = true
		assertTransition(t, c, SequenceLieFaceDown)
	})

	t.Run("stays down while knocked out", func(t *testing.T) {
		c := components(SequenceLieFaceDown)
		c.HP = 0
		c.SequenceEnded = true
		assertNoTransition(t, c)
	})

	t.Run("gets up when health remains", func(t *testing.T) {
		c := components(SequenceLieFaceDown)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceStand)
	})
}

func TestReactionSequencesRecover(t *testing.T) {
	for _, seq := range []SequenceID{SequenceFlinch0, SequenceFlinch1, SequenceDazed, SequenceStandAttack, SequenceRunStop} {
		c := components(seq)
		c.SequenceEnded = true
		assertTransition(t, c, SequenceStand)
	}
}
