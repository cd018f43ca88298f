package object

import "fmt"

const (
	// InteractionHit is the only interaction kind currently defined.
	InteractionHit = "hit"

	// DefaultRepeatDelay gates re-hits of the same hitter/target pair.
	DefaultRepeatDelay = 10
	// DefaultHitLimit is the number of distinct targets one interaction
	// may affect in a single resolution pass.
	DefaultHitLimit = 1
)

// SpriteRef points at a sprite within the object's sprite sheets.
// Rendering is handled elsewhere; the reference is carried so definitions
// round-trip and validate.
type SpriteRef struct {
	Sheet int `yaml:"sheet"`
	Index int `yaml:"index"`
}

// Volume is an axis-aligned box relative to the object origin, on the
// object's facing side. X extents are mirrored when the object faces left.
type Volume struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
	D float64 `yaml:"d"`
}

// Interaction describes an attack effect attached to a frame.
type Interaction struct {
	Kind        string   `yaml:"kind"`
	Bounds      []Volume `yaml:"bounds"`
	HPDamage    int      `yaml:"hp_damage"`
	SPDamage    int      `yaml:"sp_damage"`
	HitLimit    int      `yaml:"hit_limit"`
	RepeatDelay int      `yaml:"repeat_delay"`
}

// Frame is one step of a sequence.
type Frame struct {
	// Wait is the number of extra ticks this frame stays before the
	// sequence advances: a frame with wait n is displayed for n+1 ticks.
	Wait         int           `yaml:"wait"`
	Sprite       SpriteRef     `yaml:"sprite"`
	Body         []Volume      `yaml:"body"`
	Interactions []Interaction `yaml:"interactions"`
}

// Transitions maps control action edges to sequence names.
type Transitions struct {
	PressDefend  string `yaml:"press_defend"`
	PressJump    string `yaml:"press_jump"`
	PressAttack  string `yaml:"press_attack"`
	PressSpecial string `yaml:"press_special"`

	HoldDefend  string `yaml:"hold_defend"`
	HoldJump    string `yaml:"hold_jump"`
	HoldAttack  string `yaml:"hold_attack"`
	HoldSpecial string `yaml:"hold_special"`

	ReleaseDefend  string `yaml:"release_defend"`
	ReleaseJump    string `yaml:"release_jump"`
	ReleaseAttack  string `yaml:"release_attack"`
	ReleaseSpecial string `yaml:"release_special"`
}

// Sequence is a named series of frames with optional transitions.
type Sequence struct {
	// Next is the sequence to switch to when this one ends. Overrides
	// the handler transition for the sequence-end tick.
	Next        string      `yaml:"next"`
	Frames      []Frame     `yaml:"frames"`
	Transitions Transitions `yaml:"transitions"`
}

// Definition is the authored configuration for one object.
type Definition struct {
	Sequences map[string]Sequence `yaml:"sequences"`
}

// Normalize fills interaction defaults in place.
func (d *Definition) Normalize() {
	for name, seq := range d.Sequences {
		for fi := range seq.Frames {
			for ii := range seq.Frames[fi].Interactions {
				in := &seq.Frames[fi].Interactions[ii]
				if in.Kind == "" {
					in.Kind = InteractionHit
				}
				if in.RepeatDelay == 0 {
					in.RepeatDelay = DefaultRepeatDelay
				}
				if in.HitLimit == 0 {
					in.HitLimit = DefaultHitLimit
				}
			}
		}
		d.Sequences[name] = seq
	}
}

// Validate checks structural integrity: non-empty sequences, known
// interaction kinds, and that next/transition targets exist.
func (d *Definition) Validate() error {
	if len(d.Sequences) == 0 {
		return fmt.Errorf("object: no sequences defined")
	}
	for name, seq := range d.Sequences {
		if len(seq.Frames) == 0 {
			return fmt.Errorf("object: sequence %q has no frames", name)
		}
		for fi, frame := range seq.Frames {
			if frame.Wait < 0 {
				return fmt.Errorf("object: sequence %q frame %d has negative wait", name, fi)
			}
			for _, in := range frame.Interactions {
				if in.Kind != InteractionHit {
					return fmt.Errorf("object: sequence %q frame %d has unknown interaction kind %q", name, fi, in.Kind)
				}
				if in.HitLimit < 0 || in.RepeatDelay < 0 {
					return fmt.Errorf("object: sequence %q frame %d has negative hit gating", name, fi)
				}
			}
		}
		if seq.Next != "" {
			if _, ok := d.Sequences[seq.Next]; !ok {
				return fmt.Errorf("object: sequence %q next refers to unknown sequence %q", name, seq.Next)
			}
		}
		for _, target := range seq.Transitions.targets() {
			if target == "" {
				continue
			}
			if _, ok := d.Sequences[target]; !ok {
				return fmt.Errorf("object: sequence %q transition refers to unknown sequence %q", name, target)
			}
		}
	}
	return nil
}

func (t Transitions) targets() []string {
	return []string{
		t.PressDefend, t.PressJump, t.PressAttack, t.PressSpecial,
		t.HoldDefend, t.HoldJump, t.HoldAttack, t.HoldSpecial,
		t.ReleaseDefend, t.ReleaseJump, t.ReleaseAttack, t.ReleaseSpecial,
	}
}
