package input

// State tracks a controller's current and previous tick input, exposing
// press/hold/release edges for control transitions.
type State struct {
	Current  ControllerInput
	Previous ControllerInput
}

// Pressed reports a rising edge on the action this tick.
func (s State) Pressed(a ControlAction) bool {
	return s.Current.Action(a) && !s.Previous.Action(a)
}

// Held reports the action down on both this and the previous tick.
func (s State) Held(a ControlAction) bool {
	return s.Current.Action(a) && s.Previous.Action(a)
}

// Released reports a falling edge on the action this tick.
func (s State) Released(a ControlAction) bool {
	return !s.Current.Action(a) && s.Previous.Action(a)
}

func (s *State) advance(next ControllerInput) {
	s.Previous = s.Current
	s.Current = next
}
