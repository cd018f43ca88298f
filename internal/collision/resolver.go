package collision

import "github.com/Lighty0410/autexousious/internal/object"

// HitEffectDelay is the fixed number of ticks between a hit interaction
// overlapping a hurt volume and its effects landing.
const HitEffectDelay = 3

// Source is one hitter interaction for a resolution pass, with bounds
// already placed in world space.
type Source struct {
	Entity      int
	Interaction object.Interaction
	Bounds      []Box
}

// Target is one damageable entity for a resolution pass.
type Target struct {
	Entity int
	Body   []Box
}

// Hit is a landed interaction effect.
type Hit struct {
	// Tick the effects land on (detection tick + HitEffectDelay).
	Tick     uint64
	Hitter   int
	Target   int
	HPDamage int
	SPDamage int
}

type pair struct {
	hitter int
	target int
}

// Resolver detects hitter/target overlaps and schedules their effects.
// It keeps the per-pair repeat gates across ticks, so one resolver must
// live for the duration of a round.
type Resolver struct {
	// blockedUntil maps a hitter/target pair to the first tick a new hit
	// may be detected again.
	blockedUntil map[pair]uint64
	pending      []Hit
}

func NewResolver() *Resolver {
	return &Resolver{blockedUntil: make(map[pair]uint64)}
}

// Detect runs one resolution pass. Sources and targets must be supplied
// in ascending entity order; detections are resolved against the state
// captured at the start of the pass, so resolution is deterministic.
func (r *Resolver) Detect(tick uint64, sources []Source, targets []Target) {
	for _, src := range sources {
		remaining := src.Interaction.HitLimit
		for _, tgt := range targets {
			if remaining <= 0 {
				break
			}
			if tgt.Entity == src.Entity {
				continue
			}
			p := pair{hitter: src.Entity, target: tgt.Entity}
			if until, ok := r.blockedUntil[p]; ok && tick < until {
				continue
			}
			if !overlaps(src.Bounds, tgt.Body) {
				continue
			}

			r.pending = append(r.pending, Hit{
				Tick:     tick + HitEffectDelay,
				Hitter:   src.Entity,
				Target:   tgt.Entity,
				HPDamage: src.Interaction.HPDamage,
				SPDamage: src.Interaction.SPDamage,
			})
			r.blockedUntil[p] = tick + uint64(src.Interaction.RepeatDelay)
			remaining--
		}
	}
}

// Due returns the hits whose delay has elapsed at the given tick, in
// detection order, and removes them from the pending queue.
func (r *Resolver) Due(tick uint64) []Hit {
	var due []Hit
	rest := r.pending[:0]
	for _, h := range r.pending {
		if h.Tick <= tick {
			due = append(due, h)
		} else {
			rest = append(rest, h)
		}
	}
	r.pending = rest
	return due
}

func overlaps(a, b []Box) bool {
	for _, ab := range a {
		for _, bb := range b {
			if Intersects(ab, bb) {
				return true
			}
		}
	}
	return false
}
