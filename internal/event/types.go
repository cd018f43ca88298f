package event

const (
	EventHit             = "game.hit"
	EventSequenceEnd     = "game.sequence_end"
	EventKnockout        = "game.knockout"
	EventStateTransition = "app.state_transition"
	EventAppExit         = "app.exit"
	EventSessionJoined   = "session.joined"
	EventSessionStarted  = "session.started"
)

// HitEvent is published when a hit interaction's effects land, 3 ticks
// after the overlap was detected.
type HitEvent struct {
	Tick     uint64
	Hitter   int
	Target   int
	HPDamage int
	SPDamage int
}

type SequenceEndEvent struct {
	Tick     uint64
	Entity   int
	Sequence string
}

type KnockoutEvent struct {
	Tick   uint64
	Entity int
}

type StateTransitionEvent struct {
	From string
	To   string
}

type SessionDeviceEvent struct {
	SessionCode string
	DeviceID    int
	DeviceName  string
}
