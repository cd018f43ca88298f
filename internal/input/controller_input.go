// Package input models controller state for both local and network
// controlled characters.
package input

// ControllerID identifies one controller within a game. In a network
// session each session device owns one controller.
type ControllerID int

// ControlAction is one of the four character action buttons.
type ControlAction int

const (
	ActionDefend ControlAction = iota
	ActionJump
	ActionAttack
	ActionSpecial
)

func (a ControlAction) String() string {
	switch a {
	case ActionDefend:
		return "defend"
	case ActionJump:
		return "jump"
	case ActionAttack:
		return "attack"
	case ActionSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Actions lists the control actions in transition precedence order.
var Actions = []ControlAction{ActionDefend, ActionJump, ActionAttack, ActionSpecial}

// ControllerInput is the raw input for one controller on one tick.
// XAxis is positive towards the right of the screen, ZAxis positive
// towards the foreground.
type ControllerInput struct {
	XAxis   float64 `json:"x_axis"`
	ZAxis   float64 `json:"z_axis"`
	Defend  bool    `json:"defend"`
	Jump    bool    `json:"jump"`
	Attack  bool    `json:"attack"`
	Special bool    `json:"special"`
}

func (in ControllerInput) Action(a ControlAction) bool {
	switch a {
	case ActionDefend:
		return in.Defend
	case ActionJump:
		return in.Jump
	case ActionAttack:
		return in.Attack
	case ActionSpecial:
		return in.Special
	default:
		return false
	}
}
