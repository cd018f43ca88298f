package input

import "sync"

// Buffer stages controller input between ticks. Sources (stdio commands,
// network session) stage input at any time; the simulation commits once
// per tick so every system sees the same snapshot.
//
// Staged input is sticky: a controller keeps its last staged input until
// a source stages a replacement. Axes stay deflected and buttons stay
// held across ticks, matching a held physical controller.
type Buffer struct {
	mu     sync.Mutex
	staged map[ControllerID]ControllerInput
	states map[ControllerID]*State
}

func NewBuffer() *Buffer {
	return &Buffer{
		staged: make(map[ControllerID]ControllerInput),
		states: make(map[ControllerID]*State),
	}
}

// Register adds a controller with neutral input.
func (b *Buffer) Register(id ControllerID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.states[id]; !ok {
		b.states[id] = &State{}
		b.staged[id] = ControllerInput{}
	}
}

// Stage records input for the next commit. Unknown controllers are
// registered implicitly.
func (b *Buffer) Stage(id ControllerID, in ControllerInput) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.states[id]; !ok {
		b.states[id] = &State{}
	}
	b.staged[id] = in
}

// Commit advances every controller's state by one tick.
func (b *Buffer) Commit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, st := range b.states {
		st.advance(b.staged[id])
	}
}

// State returns the committed state for a controller. The zero State is
// returned for unknown controllers.
func (b *Buffer) State(id ControllerID) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.states[id]; ok {
		return *st
	}
	return State{}
}

// Staged returns the input currently staged for a controller, without
// committing it. Lockstep publishes this to the other devices.
func (b *Buffer) Staged(id ControllerID) ControllerInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staged[id]
}

// Controllers returns the registered controller IDs in no particular order.
func (b *Buffer) Controllers() []ControllerID {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]ControllerID, 0, len(b.states))
	for id := range b.states {
		ids = append(ids, id)
	}
	return ids
}
