// Package appstate tracks which screen of the application is active
// and applies state transitions between ticks.
package appstate

import (
	"log/slog"
	"sync"

	"github.com/Lighty0410/autexousious/internal/event"
)

// StateID names an application state.
type StateID string

const (
	GameModeSelection  StateID = "game_mode_selection"
	CharacterSelection StateID = "character_selection"
	MapSelection       StateID = "map_selection"
	SessionLobby       StateID = "session_lobby"
	Loading            StateID = "loading"
	GamePlay           StateID = "game_play"
	Exit               StateID = "exit"
)

// StateIDs lists the states a stdin barrier may wait on. Exit is not a
// barrier target: the exit command is the only path into it, and that
// command could never be consumed while a barrier on it held stdin.
var StateIDs = []StateID{
	GameModeSelection,
	CharacterSelection,
	MapSelection,
	SessionLobby,
	Loading,
	GamePlay,
}

// ParseStateID validates a raw barrier state name.
func ParseStateID(raw string) (StateID, bool) {
	for _, id := range StateIDs {
		if string(id) == raw {
			return id, true
		}
	}
	return "", false
}

// Machine queues transition requests and applies at most one between
// ticks. Requests made by transition event subscribers are deferred to
// the next Apply, so a subscriber reacting to a transition can never
// recurse into another one.
type Machine struct {
	bus *event.Bus

	mu      sync.Mutex
	current StateID
	queue   []StateID
}

func NewMachine(bus *event.Bus) *Machine {
	return &Machine{bus: bus, current: GameModeSelection}
}

func (m *Machine) Current() StateID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Request queues a transition. It never transitions directly.
func (m *Machine) Request(next StateID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, next)
}

// Apply performs the most recently requested transition, if any, and
// publishes it. The queue is cleared either way; stale intermediate
// requests are superseded by the last one.
func (m *Machine) Apply() (StateID, bool) {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return "", false
	}
	next := m.queue[len(m.queue)-1]
	m.queue = m.queue[:0]
	if next == m.current {
		m.mu.Unlock()
		return "", false
	}
	prev := m.current
	m.current = next
	m.mu.Unlock()

	slog.Info("State transition", "from", prev, "to", next)
	// Published outside the lock: a subscriber may Request the next hop.
	m.bus.Publish(event.EventStateTransition, event.StateTransitionEvent{
		From: string(prev),
		To:   string(next),
	})
	return next, true
}
