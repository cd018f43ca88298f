package event

import (
	"testing"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.handlers == nil {
		t.Fatal("NewBus() handlers map not initialized")
	}
}

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe("test", func(event any) {
		received = event
	})

	bus.Publish("test", "hello")

	if received != "hello" {
		t.Errorf("handler received %v, want %v", received, "hello")
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	// must not panic
	bus.Publish("nonexistent", "data")
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	var count int

	for i := 0; i < 3; i++ {
		bus.Subscribe("test", func(event any) {
			count++
		})
	}

	bus.Publish("test", "data")

	if count != 3 {
		t.Errorf("handlers called %d times, want 3", count)
	}
}

func TestDispatchOrderIsSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		bus.Subscribe(EventHit, func(event any) {
			order = append(order, i)
		})
	}

	bus.Publish(EventHit, HitEvent{Tick: 1})

	for i, got := range order {
		if got != i {
			t.Fatalf("dispatch order = %v, want ascending subscription order", order)
		}
	}
}

func TestHandlerPanicDoesNotPropagate(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("test", func(event any) {
		panic("boom")
	})
	var reached bool
	bus.Subscribe("test", func(event any) {
		reached = true
	})

	bus.Publish("test", "data")

	if !reached {
		t.Error("handler after panicking handler not invoked")
	}
}

func TestMultipleEvents(t *testing.T) {
	bus := NewBus()
	var hitReceived, exitReceived bool

	bus.Subscribe(EventHit, func(event any) {
		hitReceived = true
	})
	bus.Subscribe(EventAppExit, func(event any) {
		exitReceived = true
	})

	bus.Publish(EventHit, HitEvent{})

	if !hitReceived {
		t.Error("hit handler not invoked")
	}
	if exitReceived {
		t.Error("exit handler invoked for hit event")
	}
}
