package stdio

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lighty0410/autexousious/internal/appstate"
	"github.com/Lighty0410/autexousious/internal/event"
	"github.com/Lighty0410/autexousious/internal/input"
)

// ErrExit is returned from BeforeStep when the exit command runs.
var ErrExit = errors.New("stdio: exit requested")

// Dispatcher consumes parsed commands between ticks. A state barrier
// pauses consumption until the state machine reaches the named state;
// a frame step pauses it for a number of ticks.
type Dispatcher struct {
	reader  *Reader
	machine *appstate.Machine
	inputs  *input.Buffer
	bus     *event.Bus

	barrier   appstate.StateID
	skipTicks int
}

func NewDispatcher(reader *Reader, machine *appstate.Machine, inputs *input.Buffer, bus *event.Bus) *Dispatcher {
	return &Dispatcher{reader: reader, machine: machine, inputs: inputs, bus: bus}
}

// BeforeStep consumes commands for this tick. Control commands (exit,
// barriers, frame steps) take effect immediately; at most one input
// line (controller input or the no-input comment) is consumed per tick,
// so a scripted frame is exactly one line. It plugs into the game
// loop's before-step hook.
func (d *Dispatcher) BeforeStep(ctx context.Context, tick uint64) error {
	if d.skipTicks > 0 {
		d.skipTicks--
		return nil
	}

	for {
		if d.barrier != "" {
			if d.machine.Current() != d.barrier {
				return nil
			}
			slog.Debug("State barrier released", "state", d.barrier, "tick", tick)
			d.barrier = ""
		}

		line, ok := d.nextLine()
		if !ok {
			return nil
		}
		cmd, err := Parse(line)
		if err != nil {
			slog.Warn("Dropping bad command", "line", line, "error", err)
			continue
		}
		if cmd == nil {
			continue
		}

		switch c := cmd.(type) {
		case ExitCommand:
			slog.Info("Exit requested", "tick", tick)
			d.machine.Request(appstate.Exit)
			d.machine.Apply()
			d.bus.Publish(event.EventAppExit, nil)
			return ErrExit
		case ControllerInputCommand:
			d.inputs.Stage(c.Controller, c.Input)
			return nil
		case NoInputCommand:
			for _, id := range d.inputs.Controllers() {
				d.inputs.Stage(id, input.ControllerInput{})
			}
			return nil
		case StateBarrierCommand:
			d.barrier = c.State
		case FrameStepCommand:
			// This tick counts as the first of the stepped frames.
			d.skipTicks = c.Frames - 1
			return nil
		}
	}
}

func (d *Dispatcher) nextLine() (string, bool) {
	select {
	case line, ok := <-d.reader.Lines():
		if !ok {
			return "", false
		}
		return line, true
	default:
		return "", false
	}
}
