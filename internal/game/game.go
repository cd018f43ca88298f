// Package game runs the tick pipeline: input, sequence selection,
// kinematics, bounds, collision and damage.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lighty0410/autexousious/internal/character"
	"github.com/Lighty0410/autexousious/internal/clock"
	"github.com/Lighty0410/autexousious/internal/collision"
	"github.com/Lighty0410/autexousious/internal/event"
	"github.com/Lighty0410/autexousious/internal/gamemap"
	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/kinematics"
	"github.com/Lighty0410/autexousious/internal/object"
)

const (
	// DefaultHealthPoints for a freshly spawned character.
	DefaultHealthPoints = 100
	// HitStopTicks is the freeze applied to both entities of a landed hit.
	HitStopTicks = 6
)

// BeforeStepFunc runs before each tick in Run. Returning an error stops
// the loop; session lockstep and stdio command draining hook in here.
type BeforeStepFunc func(ctx context.Context, tick uint64) error

// Game owns the entities on a map and advances them tick by tick.
type Game struct {
	bus      *event.Bus
	inputs   *input.Buffer
	margins  gamemap.Margins
	resolver *collision.Resolver

	entities []*Entity
	tick     uint64
}

func New(bus *event.Bus, inputs *input.Buffer, mapDef *gamemap.Definition) *Game {
	return &Game{
		bus:      bus,
		inputs:   inputs,
		margins:  mapDef.Margins,
		resolver: collision.NewResolver(),
	}
}

// AddCharacter spawns a character bound to a controller. Entity IDs are
// assigned in spawn order and decide collision resolution order.
func (g *Game) AddCharacter(def *character.Definition, controller input.ControllerID, pos object.Position) *Entity {
	e := newEntity(len(g.entities), controller, def, pos, DefaultHealthPoints)
	vel := object.Velocity{}
	e.Grounding = g.margins.Bound(&e.Pos, &vel)
	g.entities = append(g.entities, e)
	g.inputs.Register(controller)
	return e
}

func (g *Game) Tick() uint64 { return g.tick }

// Entities returns the entities in ID order. Callers must not mutate.
func (g *Game) Entities() []*Entity { return g.entities }

// Inputs returns the staging buffer input sources write to.
func (g *Game) Inputs() *input.Buffer { return g.inputs }

// Step advances the simulation one tick.
func (g *Game) Step() {
	g.inputs.Commit()

	for _, e := range g.entities {
		st := g.inputs.State(e.Controller)

		frozen := e.Freeze.Active()
		if frozen {
			e.Freeze.Tick()
		}

		g.updateSequence(e, st)
		g.updateRunCounter(e, st)

		kinematics.UpdateVelocity(&e.Vel, e.SequenceID, e.sequenceBegan, st.Current, e.Mirrored, e.Grounding)
		e.Mirrored = kinematics.UpdateMirrored(e.Mirrored, e.SequenceID, st.Current)
		e.sequenceBegan = false

		// Hit-stop suspends position updates only; input and sequences
		// keep flowing.
		if !frozen {
			kinematics.Integrate(&e.Pos, e.Vel)
			e.Grounding = g.margins.Bound(&e.Pos, &e.Vel)
		}
	}

	g.resolveCollisions()
	g.applyDueHits()

	for _, e := range g.entities {
		e.Status.SP.Reduce()
	}

	g.tick++
}

// Run drives Step at the configured frame rate until the context is
// cancelled or beforeStep fails.
func (g *Game) Run(ctx context.Context, frameRate int, beforeStep BeforeStepFunc) error {
	if frameRate <= 0 {
		return fmt.Errorf("game: frame rate must be positive, got %d", frameRate)
	}
	interval := time.Second / time.Duration(frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Game loop started", "frame_rate", frameRate)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Game loop stopped", "tick", g.tick)
			return nil
		case <-ticker.C:
			if beforeStep != nil {
				if err := beforeStep(ctx, g.tick); err != nil {
					return err
				}
			}
			g.Step()
		}
	}
}

func (g *Game) updateSequence(e *Entity, st input.State) {
	seq := e.Def.Sequence(e.SequenceID)

	var next character.SequenceID
	var ok bool

	// Dead characters no longer answer to input transitions.
	if e.Status.HP > 0 {
		next, ok = transitionFor(seq.Transitions, st)
	}
	if !ok {
		next, ok = character.UpdateSequence(character.UpdateComponents{
			Input:         st,
			HP:            e.Status.HP,
			SequenceID:    e.SequenceID,
			SequenceEnded: e.sequenceEnded,
			Velocity:      e.Vel,
			Mirrored:      e.Mirrored,
			Grounding:     e.Grounding,
			RunCounter:    e.Status.RunCounter,
		})
		// `next` from configuration overrides the handler transition.
		if e.sequenceEnded && seq.Next != "" {
			next, ok = character.SequenceID(seq.Next), true
		}
	}
	if !ok && e.sequenceEnded {
		// Loop the sequence when nothing else claims the transition.
		next, ok = e.SequenceID, true
	}

	if ok && next != "" {
		e.startSequence(next)
		return
	}
	if e.tickFrame() {
		g.bus.Publish(event.EventSequenceEnd, event.SequenceEndEvent{
			Tick:     g.tick,
			Entity:   e.ID,
			Sequence: string(e.SequenceID),
		})
	}
}

func (g *Game) updateRunCounter(e *Entity, st input.State) {
	forward := st.Current.XAxis > 0
	if e.Mirrored {
		forward = st.Current.XAxis < 0
	}
	if e.SequenceID == character.SequenceWalk && forward {
		e.Status.RunCounter.TickWalk()
	} else {
		e.Status.RunCounter.TickIdle()
	}
}

// resolveCollisions runs one detection pass over the entities' current
// frames, ascending entity ID.
func (g *Game) resolveCollisions() {
	var sources []collision.Source
	var targets []collision.Target

	for _, e := range g.entities {
		frame := e.Frame()
		for _, in := range frame.Interactions {
			boxes := make([]collision.Box, 0, len(in.Bounds))
			for _, v := range in.Bounds {
				boxes = append(boxes, collision.FromVolume(v, e.Pos, e.Mirrored))
			}
			if len(boxes) > 0 {
				sources = append(sources, collision.Source{Entity: e.ID, Interaction: in, Bounds: boxes})
			}
		}
		if len(frame.Body) > 0 {
			body := make([]collision.Box, 0, len(frame.Body))
			for _, v := range frame.Body {
				body = append(body, collision.FromVolume(v, e.Pos, e.Mirrored))
			}
			targets = append(targets, collision.Target{Entity: e.ID, Body: body})
		}
	}

	g.resolver.Detect(g.tick, sources, targets)
}

func (g *Game) applyDueHits() {
	for _, hit := range g.resolver.Due(g.tick) {
		target := g.entities[hit.Target]
		hitter := g.entities[hit.Hitter]

		target.Status.HP -= character.HealthPoints(hit.HPDamage)
		if target.Status.HP < 0 {
			target.Status.HP = 0
		}
		target.Status.SP += character.StunPoints(hit.SPDamage)

		if target.Status.HP <= 0 {
			target.startSequence(character.SequenceFallForwardAscend)
		} else {
			target.startSequence(character.SequenceOnHit(target.Status.SP))
		}

		hitter.Freeze = clock.NewFrameFreezeClock(HitStopTicks)
		target.Freeze = clock.NewFrameFreezeClock(HitStopTicks)

		g.bus.Publish(event.EventHit, event.HitEvent{
			Tick:     g.tick,
			Hitter:   hit.Hitter,
			Target:   hit.Target,
			HPDamage: hit.HPDamage,
			SPDamage: hit.SPDamage,
		})
		if target.Status.HP <= 0 {
			g.bus.Publish(event.EventKnockout, event.KnockoutEvent{Tick: g.tick, Entity: target.ID})
		}
	}
}
