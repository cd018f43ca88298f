package session

import (
	"context"
	"sync"

	"github.com/Lighty0410/autexousious/internal/input"
)

// InputSync gates the lockstep loop: tick N may not run until every
// device's input for tick N has arrived.
type InputSync struct {
	mu   sync.Mutex
	cond *sync.Cond

	devices []DeviceID
	pending map[uint64]map[DeviceID]input.ControllerInput
}

// NewInputSync tracks the final device list from session start.
func NewInputSync(devices []Device) *InputSync {
	s := &InputSync{
		devices: make([]DeviceID, 0, len(devices)),
		pending: make(map[uint64]map[DeviceID]input.ControllerInput),
	}
	for _, d := range devices {
		s.devices = append(s.devices, d.ID)
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Put records a device's input for a tick. Late duplicates overwrite.
func (s *InputSync) Put(tick InputTick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.pending[tick.Tick]
	if !ok {
		m = make(map[DeviceID]input.ControllerInput, len(s.devices))
		s.pending[tick.Tick] = m
	}
	m[tick.Device] = tick.Input
	s.cond.Broadcast()
}

// WaitTick blocks until every device's input for the tick is present,
// then returns the inputs and forgets the tick. It returns the context
// error if cancelled while waiting.
func (s *InputSync) WaitTick(ctx context.Context, tick uint64) (map[DeviceID]input.ControllerInput, error) {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.completeLocked(tick) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.cond.Wait()
	}

	inputs := s.pending[tick]
	delete(s.pending, tick)
	return inputs, nil
}

// Ready reports whether the tick could run without blocking.
func (s *InputSync) Ready(tick uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeLocked(tick)
}

func (s *InputSync) completeLocked(tick uint64) bool {
	m, ok := s.pending[tick]
	if !ok {
		return false
	}
	for _, id := range s.devices {
		if _, ok := m[id]; !ok {
			return false
		}
	}
	return true
}
