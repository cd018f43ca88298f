package collision

import (
	"testing"

	"github.com/Lighty0410/autexousious/internal/object"
)

func hitInteraction(hpDamage, spDamage, hitLimit, repeatDelay int) object.Interaction {
	return object.Interaction{
		Kind:        object.InteractionHit,
		HPDamage:    hpDamage,
		SPDamage:    spDamage,
		HitLimit:    hitLimit,
		RepeatDelay: repeatDelay,
	}
}

func unitBoxAt(x float64) Box {
	return Box{MinX: x, MinY: 0, MinZ: 0, MaxX: x + 10, MaxY: 10, MaxZ: 10}
}

func source(entity int, in object.Interaction, boxes ...Box) Source {
	return Source{Entity: entity, Interaction: in, Bounds: boxes}
}

func target(entity int, boxes ...Box) Target {
	return Target{Entity: entity, Body: boxes}
}

func TestHitEffectsDelayedThreeTicks(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(20, 30, 1, 10)

	r.Detect(100, []Source{source(0, in, unitBoxAt(0))}, []Target{target(1, unitBoxAt(5))})

	for tick := uint64(100); tick < 103; tick++ {
		if due := r.Due(tick); len(due) != 0 {
			t.Fatalf("Due(%d) = %d hits, want 0 before the delay elapses", tick, len(due))
		}
	}

	due := r.Due(103)
	if len(due) != 1 {
		t.Fatalf("Due(103) = %d hits, want 1", len(due))
	}
	hit := due[0]
	if hit.Hitter != 0 || hit.Target != 1 {
		t.Errorf("hit = %d -> %d, want 0 -> 1", hit.Hitter, hit.Target)
	}
	if hit.HPDamage != 20 || hit.SPDamage != 30 {
		t.Errorf("hit damage = hp %d sp %d, want 20/30", hit.HPDamage, hit.SPDamage)
	}

	if due := r.Due(103); len(due) != 0 {
		t.Error("Due() returned the same hit twice")
	}
}

func TestNoOverlapNoHit(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(20, 0, 1, 10)

	r.Detect(0, []Source{source(0, in, unitBoxAt(0))}, []Target{target(1, unitBoxAt(50))})

	if due := r.Due(3); len(due) != 0 {
		t.Fatalf("Due() = %d hits for disjoint boxes, want 0", len(due))
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(20, 0, 1, 10)

	// Boxes share the x=10 plane only.
	r.Detect(0, []Source{source(0, in, unitBoxAt(0))}, []Target{target(1, unitBoxAt(10))})

	if due := r.Due(3); len(due) != 0 {
		t.Fatalf("Due() = %d hits for touching boxes, want 0", len(due))
	}
}

func TestHitLimitBoundsTargetsPerPass(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(10, 0, 2, 10)

	targets := []Target{
		target(1, unitBoxAt(1)),
		target(2, unitBoxAt(2)),
		target(3, unitBoxAt(3)),
	}
	r.Detect(0, []Source{source(0, in, unitBoxAt(0))}, targets)

	due := r.Due(HitEffectDelay)
	if len(due) != 2 {
		t.Fatalf("Due() = %d hits with hit_limit 2, want 2", len(due))
	}
	// Ascending entity order decides who is hit.
	if due[0].Target != 1 || due[1].Target != 2 {
		t.Errorf("targets hit = %d, %d, want 1, 2", due[0].Target, due[1].Target)
	}
}

func TestRepeatDelayGatesSamePair(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(10, 0, 1, 10)
	src := []Source{source(0, in, unitBoxAt(0))}
	tgt := []Target{target(1, unitBoxAt(5))}

	// Overlap persists every tick; only detections 10 ticks apart land.
	for tick := uint64(0); tick < 25; tick++ {
		r.Detect(tick, src, tgt)
	}

	var landed []uint64
	for tick := uint64(0); tick < 40; tick++ {
		for _, h := range r.Due(tick) {
			landed = append(landed, h.Tick)
		}
	}

	want := []uint64{3, 13, 23}
	if len(landed) != len(want) {
		t.Fatalf("landed %d hits %v, want %v", len(landed), landed, want)
	}
	for i := range want {
		if landed[i] != want[i] {
			t.Errorf("hit %d landed on tick %d, want %d", i, landed[i], want[i])
		}
	}
}

func TestRepeatDelayIsPerPair(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(10, 0, 2, 10)

	r.Detect(0, []Source{source(0, in, unitBoxAt(0))}, []Target{
		target(1, unitBoxAt(1)),
		target(2, unitBoxAt(2)),
	})
	// Target 1 is gated, target 2 was hit in the same pass and is gated
	// independently.
	r.Detect(1, []Source{source(0, in, unitBoxAt(0))}, []Target{
		target(1, unitBoxAt(1)),
		target(2, unitBoxAt(2)),
	})

	due := r.Due(10)
	if len(due) != 2 {
		t.Fatalf("Due() = %d hits, want 2 (one per pair)", len(due))
	}
}

func TestHitterDoesNotHitItself(t *testing.T) {
	r := NewResolver()
	in := hitInteraction(10, 0, 1, 10)

	r.Detect(0,
		[]Source{source(0, in, unitBoxAt(0))},
		[]Target{target(0, unitBoxAt(0)), target(1, unitBoxAt(5))},
	)

	due := r.Due(HitEffectDelay)
	if len(due) != 1 {
		t.Fatalf("Due() = %d hits, want 1", len(due))
	}
	if due[0].Target != 1 {
		t.Errorf("target = %d, want 1", due[0].Target)
	}
}

func TestFromVolumeMirrored(t *testing.T) {
	v := object.Volume{X: 5, Y: 10, Z: -2, W: 14, H: 10, D: 4}
	pos := object.Position{X: 100, Y: 50, Z: 0}

	right := FromVolume(v, pos, false)
	if right.MinX != 105 || right.MaxX != 119 {
		t.Errorf("facing right X = [%v, %v], want [105, 119]", right.MinX, right.MaxX)
	}

	left := FromVolume(v, pos, true)
	if left.MinX != 81 || left.MaxX != 95 {
		t.Errorf("facing left X = [%v, %v], want [81, 95]", left.MinX, left.MaxX)
	}

	// Y and Z are unaffected by facing.
	if left.MinY != 60 || left.MaxY != 70 || left.MinZ != -2 || left.MaxZ != 2 {
		t.Errorf("mirrored Y/Z = %+v, want Y [60,70] Z [-2,2]", left)
	}
}
