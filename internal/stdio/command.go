package stdio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lighty0410/autexousious/internal/appstate"
	"github.com/Lighty0410/autexousious/internal/input"
)

// Command is a parsed stdin line.
type Command interface {
	command()
}

// ExitCommand terminates the application.
type ExitCommand struct{}

// ControllerInputCommand stages input for one controller this tick.
type ControllerInputCommand struct {
	Controller input.ControllerID
	Input      input.ControllerInput
}

// NoInputCommand is an explicit "nothing pressed this tick" marker,
// written as a comment line starting with '#'.
type NoInputCommand struct{}

// StateBarrierCommand holds further commands until the application
// reaches the named state.
type StateBarrierCommand struct {
	State appstate.StateID
}

// FrameStepCommand lets the simulation run a number of ticks before
// the next command is consumed.
type FrameStepCommand struct {
	Frames int
}

func (ExitCommand) command()            {}
func (ControllerInputCommand) command() {}
func (NoInputCommand) command()         {}
func (StateBarrierCommand) command()    {}
func (FrameStepCommand) command()       {}

// Parse converts one stdin line into a command. Blank lines yield
// (nil, nil); comment lines yield NoInputCommand.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "#") {
		return NoInputCommand{}, nil
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case "exit":
		return ExitCommand{}, nil
	case "controller_input":
		return parseControllerInput(fields[1:])
	case "state_barrier":
		if len(fields) != 2 {
			return nil, fmt.Errorf("stdio: state_barrier wants a state name")
		}
		state, ok := appstate.ParseStateID(fields[1])
		if !ok {
			return nil, fmt.Errorf("stdio: unknown state %q", fields[1])
		}
		return StateBarrierCommand{State: state}, nil
	case "frame_step":
		if len(fields) != 2 {
			return nil, fmt.Errorf("stdio: frame_step wants a frame count")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("stdio: frame_step count %q must be a positive integer", fields[1])
		}
		return FrameStepCommand{Frames: n}, nil
	default:
		return nil, fmt.Errorf("stdio: unknown command %q", fields[0])
	}
}

func parseControllerInput(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("stdio: controller_input wants a controller id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return nil, fmt.Errorf("stdio: controller id %q must be a non-negative integer", args[0])
	}
	if len(args[1:])%2 != 0 {
		return nil, fmt.Errorf("stdio: controller_input arguments must be key value pairs")
	}

	cmd := ControllerInputCommand{Controller: input.ControllerID(id)}
	pairs := args[1:]
	for i := 0; i < len(pairs); i += 2 {
		key, value := pairs[i], pairs[i+1]
		switch key {
		case "x_axis", "z_axis":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("stdio: %s value %q must be a number", key, value)
			}
			if key == "x_axis" {
				cmd.Input.XAxis = v
			} else {
				cmd.Input.ZAxis = v
			}
		case "defend", "jump", "attack", "special":
			pressed, err := parseButton(value)
			if err != nil {
				return nil, fmt.Errorf("stdio: %s %w", key, err)
			}
			switch key {
			case "defend":
				cmd.Input.Defend = pressed
			case "jump":
				cmd.Input.Jump = pressed
			case "attack":
				cmd.Input.Attack = pressed
			case "special":
				cmd.Input.Special = pressed
			}
		default:
			return nil, fmt.Errorf("stdio: unknown controller_input key %q", key)
		}
	}
	return cmd, nil
}

func parseButton(value string) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("value %q must be 0 or 1", value)
	}
}
