// Package session implements the netplay layer: a relay server that
// groups devices into sessions, and the client plus lockstep input
// synchronisation the game loop drives.
package session

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/Lighty0410/autexousious/internal/input"
)

// DeviceID identifies a device within a session. The host is always 0.
type DeviceID int

// HostDeviceID is assigned to the device that opened the session.
const HostDeviceID DeviceID = 0

// Device is one participant in a session lobby.
type Device struct {
	ID   DeviceID `json:"id"`
	Name string   `json:"name"`
}

// SessionCode is the short code a host shares so others can join.
type SessionCode string

// Letters that survive being read out loud; no I, L or O.
const codeLetters = "ABCDEFGHJKMNPQRSTUVWXYZ"

const codeLength = 4

// NewSessionCode returns a random join code.
func NewSessionCode() SessionCode {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: reading random bytes: %v", err))
	}
	for i := range b {
		b[i] = codeLetters[int(b[i])%len(codeLetters)]
	}
	return SessionCode(b)
}

// MessageType discriminates the JSON envelopes on a session connection.
type MessageType string

const (
	TypeHostRequest  MessageType = "host_request"
	TypeHostResponse MessageType = "host_response"
	TypeJoinRequest  MessageType = "join_request"
	TypeJoinResponse MessageType = "join_response"
	TypeLobbyUpdate  MessageType = "lobby_update"
	TypeSessionStart MessageType = "session_start"
	TypeInputTick    MessageType = "input_tick"
	TypeLeave        MessageType = "leave"
	TypeSessionEnd   MessageType = "session_end"
	TypeError        MessageType = "error"
)

// Envelope wraps every message exchanged with the session server.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload into an envelope of the given type.
func NewEnvelope(t MessageType, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("session: marshaling %s payload: %w", t, err)
	}
	return Envelope{Type: t, Payload: raw}, nil
}

// HostRequest opens a new session; the sender becomes device 0.
type HostRequest struct {
	DeviceName string `json:"device_name"`
}

type HostResponse struct {
	Code     SessionCode `json:"code"`
	DeviceID DeviceID    `json:"device_id"`
}

// JoinRequest attaches the sender to an existing session by code.
type JoinRequest struct {
	Code       SessionCode `json:"code"`
	DeviceName string      `json:"device_name"`
}

type JoinResponse struct {
	Code     SessionCode `json:"code"`
	DeviceID DeviceID    `json:"device_id"`
	Devices  []Device    `json:"devices"`
}

// LobbyUpdate is broadcast whenever the device list changes before play.
type LobbyUpdate struct {
	Devices []Device `json:"devices"`
}

// SessionStart is broadcast when the host begins play. The device list
// is final from this point; lockstep runs over exactly these devices.
type SessionStart struct {
	Devices []Device `json:"devices"`
}

// InputTick carries one device's controller input for one tick.
type InputTick struct {
	Device DeviceID              `json:"device"`
	Tick   uint64                `json:"tick"`
	Input  input.ControllerInput `json:"input"`
}

// SessionEnd is broadcast when the session is torn down.
type SessionEnd struct {
	Reason string `json:"reason"`
}

// ErrorMessage reports a rejected request.
type ErrorMessage struct {
	Reason string `json:"reason"`
}

const (
	ReasonUnknownSession = "unknown_session"
	ReasonSessionStarted = "session_started"
	ReasonNotHost        = "not_host"
	ReasonBadRequest     = "bad_request"
	ReasonHostLeft       = "host_left"
)
