package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Server relays session traffic between devices. It holds no game
// state; every device runs the same deterministic simulation and the
// server only forwards lobby changes and per-tick inputs.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[SessionCode]*relaySession
}

func NewServer(addr string) *Server {
	return &Server{
		addr:     addr,
		sessions: make(map[SessionCode]*relaySession),
	}
}

// Start serves websocket connections on /session until the context is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("Starting session server", "addr", s.addr)

	mux := http.NewServeMux()
	mux.HandleFunc("/session", s.handleWS)
	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down session server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Session server stopped")
	return nil
}

// Handler returns the websocket handler, for tests that serve it from
// their own listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/session", s.handleWS)
	return mux
}

type remoteDevice struct {
	id   DeviceID
	name string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (d *remoteDevice) send(env Envelope) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if err := d.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return d.conn.WriteJSON(env)
}

type relaySession struct {
	code SessionCode

	mu      sync.Mutex
	devices []*remoteDevice
	nextID  DeviceID
	started bool
}

func (rs *relaySession) snapshotLocked() []Device {
	out := make([]Device, 0, len(rs.devices))
	for _, d := range rs.devices {
		out = append(out, Device{ID: d.id, Name: d.name})
	}
	return out
}

// broadcast sends the envelope to every device in the session.
func (rs *relaySession) broadcast(env Envelope) {
	rs.mu.Lock()
	devices := append([]*remoteDevice(nil), rs.devices...)
	rs.mu.Unlock()

	for _, d := range devices {
		if err := d.send(env); err != nil {
			slog.Warn("Failed to send to device", "session", rs.code, "device", d.id, "error", err)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	// The first message decides whether this device hosts or joins.
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		slog.Warn("Session handshake read failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	var (
		rs  *relaySession
		dev *remoteDevice
	)
	switch env.Type {
	case TypeHostRequest:
		var req HostRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			sendError(conn, ReasonBadRequest)
			return
		}
		rs, dev = s.host(conn, req)
	case TypeJoinRequest:
		var req JoinRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			sendError(conn, ReasonBadRequest)
			return
		}
		rs, dev = s.join(conn, req)
	default:
		sendError(conn, ReasonBadRequest)
		return
	}
	if rs == nil {
		return
	}

	slog.Info("Device attached", "session", rs.code, "device", dev.id, "name", dev.name)
	s.serveDevice(rs, dev)
}

func (s *Server) host(conn *websocket.Conn, req HostRequest) (*relaySession, *remoteDevice) {
	dev := &remoteDevice{id: HostDeviceID, name: req.DeviceName, conn: conn}
	rs := &relaySession{nextID: HostDeviceID + 1, devices: []*remoteDevice{dev}}

	s.mu.Lock()
	for {
		code := NewSessionCode()
		if _, taken := s.sessions[code]; !taken {
			rs.code = code
			s.sessions[code] = rs
			break
		}
	}
	s.mu.Unlock()

	resp, err := NewEnvelope(TypeHostResponse, HostResponse{Code: rs.code, DeviceID: dev.id})
	if err != nil || dev.send(resp) != nil {
		s.removeSession(rs.code)
		return nil, nil
	}
	slog.Info("Session hosted", "code", rs.code, "device", dev.id)
	return rs, dev
}

func (s *Server) join(conn *websocket.Conn, req JoinRequest) (*relaySession, *remoteDevice) {
	s.mu.Lock()
	rs, ok := s.sessions[req.Code]
	s.mu.Unlock()
	if !ok {
		sendError(conn, ReasonUnknownSession)
		return nil, nil
	}

	rs.mu.Lock()
	if rs.started {
		rs.mu.Unlock()
		sendError(conn, ReasonSessionStarted)
		return nil, nil
	}
	dev := &remoteDevice{id: rs.nextID, name: req.DeviceName, conn: conn}
	rs.nextID++
	rs.devices = append(rs.devices, dev)
	devices := rs.snapshotLocked()
	rs.mu.Unlock()

	resp, err := NewEnvelope(TypeJoinResponse, JoinResponse{Code: rs.code, DeviceID: dev.id, Devices: devices})
	if err != nil || dev.send(resp) != nil {
		s.detach(rs, dev, "send_failed")
		return nil, nil
	}

	update, _ := NewEnvelope(TypeLobbyUpdate, LobbyUpdate{Devices: devices})
	rs.broadcast(update)
	slog.Info("Device joined session", "code", rs.code, "device", dev.id)
	return rs, dev
}

func (s *Server) serveDevice(rs *relaySession, dev *remoteDevice) {
	defer s.detach(rs, dev, "disconnected")

	for {
		var env Envelope
		if err := dev.conn.ReadJSON(&env); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("Device read ended", "session", rs.code, "device", dev.id, "error", err)
			}
			return
		}

		switch env.Type {
		case TypeInputTick:
			var tick InputTick
			if err := json.Unmarshal(env.Payload, &tick); err != nil {
				errEnv, _ := NewEnvelope(TypeError, ErrorMessage{Reason: ReasonBadRequest})
				_ = dev.send(errEnv)
				continue
			}
			// Stamped with the sender's real ID: a device cannot speak
			// for another and desync its peers.
			tick.Device = dev.id
			relay, err := NewEnvelope(TypeInputTick, tick)
			if err != nil {
				continue
			}
			// Relayed to every device, the sender included, so each
			// client sees one uniform stream.
			rs.broadcast(relay)
		case TypeSessionStart:
			if dev.id != HostDeviceID {
				errEnv, _ := NewEnvelope(TypeError, ErrorMessage{Reason: ReasonNotHost})
				_ = dev.send(errEnv)
				continue
			}
			rs.mu.Lock()
			rs.started = true
			devices := rs.snapshotLocked()
			rs.mu.Unlock()
			start, _ := NewEnvelope(TypeSessionStart, SessionStart{Devices: devices})
			rs.broadcast(start)
			slog.Info("Session started", "code", rs.code, "devices", len(devices))
		case TypeLeave:
			return
		default:
			errEnv, _ := NewEnvelope(TypeError, ErrorMessage{Reason: ReasonBadRequest})
			_ = dev.send(errEnv)
		}
	}
}

// detach removes a device from its session. The host leaving, or any
// departure after play started, ends the whole session: lockstep
// cannot proceed with a missing device.
func (s *Server) detach(rs *relaySession, dev *remoteDevice, reason string) {
	rs.mu.Lock()
	found := false
	for i, d := range rs.devices {
		if d == dev {
			rs.devices = append(rs.devices[:i], rs.devices[i+1:]...)
			found = true
			break
		}
	}
	started := rs.started
	devices := rs.snapshotLocked()
	rs.mu.Unlock()

	if !found {
		return
	}
	slog.Info("Device detached", "session", rs.code, "device", dev.id, "reason", reason)

	if dev.id == HostDeviceID || started {
		endReason := "device_left"
		if dev.id == HostDeviceID {
			endReason = ReasonHostLeft
		}
		end, _ := NewEnvelope(TypeSessionEnd, SessionEnd{Reason: endReason})
		rs.broadcast(end)
		s.removeSession(rs.code)
		rs.mu.Lock()
		for _, d := range rs.devices {
			_ = d.conn.Close()
		}
		rs.devices = nil
		rs.mu.Unlock()
		slog.Info("Session ended", "code", rs.code, "reason", endReason)
		return
	}

	update, _ := NewEnvelope(TypeLobbyUpdate, LobbyUpdate{Devices: devices})
	rs.broadcast(update)
}

func (s *Server) removeSession(code SessionCode) {
	s.mu.Lock()
	delete(s.sessions, code)
	s.mu.Unlock()
}

func sendError(conn *websocket.Conn, reason string) {
	env, err := NewEnvelope(TypeError, ErrorMessage{Reason: reason})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(env)
}
