package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Lighty0410/autexousious/internal/input"
)

const handshakeTimeout = 10 * time.Second

// Client is one device's connection to the session server. Host or
// Join must complete before Listen is started.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	deviceID DeviceID
	code     SessionCode

	// Lobby receives the device list whenever it changes before play.
	Lobby chan []Device
	// Started receives the final device list when the host starts play.
	Started chan []Device
	// Inputs receives every relayed input, this device's own included.
	Inputs chan InputTick
	// Ended receives the teardown reason when the session ends.
	Ended chan string
}

// Dial connects to a session server, e.g. ws://host:port/session.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("session: dialing %s: %w", url, err)
	}
	return &Client{
		conn:    conn,
		Lobby:   make(chan []Device, 4),
		Started: make(chan []Device, 1),
		Inputs:  make(chan InputTick, 64),
		Ended:   make(chan string, 1),
	}, nil
}

func (c *Client) DeviceID() DeviceID { return c.deviceID }
func (c *Client) Code() SessionCode  { return c.code }

// Host opens a new session and returns its join code.
func (c *Client) Host(deviceName string) (SessionCode, error) {
	if err := c.write(TypeHostRequest, HostRequest{DeviceName: deviceName}); err != nil {
		return "", err
	}
	env, err := c.readHandshake()
	if err != nil {
		return "", err
	}
	if env.Type != TypeHostResponse {
		return "", handshakeError(env)
	}
	var resp HostResponse
	if err := json.Unmarshal(env.Payload, &resp); err != nil {
		return "", fmt.Errorf("session: decoding host response: %w", err)
	}
	c.deviceID = resp.DeviceID
	c.code = resp.Code
	slog.Info("Session hosted", "code", c.code, "device", c.deviceID)
	return c.code, nil
}

// Join attaches to an existing session by code.
func (c *Client) Join(code SessionCode, deviceName string) ([]Device, error) {
	if err := c.write(TypeJoinRequest, JoinRequest{Code: code, DeviceName: deviceName}); err != nil {
		return nil, err
	}
	env, err := c.readHandshake()
	if err != nil {
		return nil, err
	}
	if env.Type != TypeJoinResponse {
		return nil, handshakeError(env)
	}
	var resp JoinResponse
	if err := json.Unmarshal(env.Payload, &resp); err != nil {
		return nil, fmt.Errorf("session: decoding join response: %w", err)
	}
	c.deviceID = resp.DeviceID
	c.code = resp.Code
	slog.Info("Session joined", "code", c.code, "device", c.deviceID)
	return resp.Devices, nil
}

// Start asks the server to begin play. Host only.
func (c *Client) Start() error {
	return c.write(TypeSessionStart, nil)
}

// SendInput publishes this device's input for a tick.
func (c *Client) SendInput(tick uint64, in input.ControllerInput) error {
	return c.write(TypeInputTick, InputTick{Device: c.deviceID, Tick: tick, Input: in})
}

// Leave announces departure and closes the connection.
func (c *Client) Leave() error {
	err := c.write(TypeLeave, nil)
	_ = c.conn.Close()
	return err
}

// Listen reads server messages and dispatches them to the client's
// channels until the connection closes or the context is cancelled.
func (c *Client) Listen(ctx context.Context) error {
	// The input stream ends with the read loop, so lockstep consumers
	// see session teardown instead of waiting on inputs that will
	// never arrive.
	defer close(c.Inputs)

	go func() {
		<-ctx.Done()
		_ = c.conn.Close()
	}()

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("session: reading: %w", err)
		}

		switch env.Type {
		case TypeLobbyUpdate:
			var update LobbyUpdate
			if err := json.Unmarshal(env.Payload, &update); err != nil {
				slog.Warn("Bad lobby update", "error", err)
				continue
			}
			// Only the newest device list matters; a device that is
			// not watching the lobby must not stall dispatch.
			select {
			case c.Lobby <- update.Devices:
			default:
				select {
				case <-c.Lobby:
				default:
				}
				c.Lobby <- update.Devices
			}
		case TypeSessionStart:
			var start SessionStart
			if err := json.Unmarshal(env.Payload, &start); err != nil {
				slog.Warn("Bad session start", "error", err)
				continue
			}
			c.Started <- start.Devices
		case TypeInputTick:
			var tick InputTick
			if err := json.Unmarshal(env.Payload, &tick); err != nil {
				slog.Warn("Bad input tick", "error", err)
				continue
			}
			c.Inputs <- tick
		case TypeSessionEnd:
			var end SessionEnd
			if err := json.Unmarshal(env.Payload, &end); err != nil {
				end.Reason = "unknown"
			}
			c.Ended <- end.Reason
			return nil
		case TypeError:
			var msg ErrorMessage
			if err := json.Unmarshal(env.Payload, &msg); err == nil {
				slog.Warn("Session server rejected request", "reason", msg.Reason)
			}
		default:
			slog.Debug("Ignoring unexpected message", "type", env.Type)
		}
	}
}

func (c *Client) write(t MessageType, payload any) error {
	env, err := NewEnvelope(t, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(env)
}

func (c *Client) readHandshake() (Envelope, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return Envelope{}, err
	}
	defer c.conn.SetReadDeadline(time.Time{})

	var env Envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return Envelope{}, fmt.Errorf("session: handshake read: %w", err)
	}
	return env, nil
}

func handshakeError(env Envelope) error {
	if env.Type == TypeError {
		var msg ErrorMessage
		if err := json.Unmarshal(env.Payload, &msg); err == nil {
			return fmt.Errorf("session: request rejected: %s", msg.Reason)
		}
	}
	return fmt.Errorf("session: unexpected handshake reply %q", env.Type)
}
