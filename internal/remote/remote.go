// Package remote exposes the viewer over a WebSocket bridge: connected
// clients receive viewer state updates and can send control commands, which
// the viewer applies on its render tick.
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Sanskruti-Shete/anatomy-model/internal/logger"
)

// Command is a control message from a remote client.
type Command struct {
	// Action is one of: load_system, select_organ, clear_selection,
	// toggle_symptom, set_pain, focus, reset_view.
	Action  string  `json:"action"`
	System  string  `json:"system,omitempty"`
	Organ   string  `json:"organ,omitempty"`
	Symptom string  `json:"symptom,omitempty"`
	Pain    float32 `json:"pain,omitempty"`
}

// State is the viewer snapshot broadcast to clients.
type State struct {
	System         string   `json:"system"`
	Loading        bool     `json:"loading"`
	SelectedLabel  string   `json:"selected_label,omitempty"`
	SelectedOrgan  string   `json:"selected_organ,omitempty"`
	ActiveSymptoms []string `json:"active_symptoms"`
	PainLevel      float32  `json:"pain_level"`
}

// Server accepts WebSocket clients and relays commands and state.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	lastState []byte

	commands chan Command
	httpSrv  *http.Server
}

// NewServer creates a server that will listen on addr when started.
func NewServer(addr string) *Server {
	return &Server{
		addr:    addr,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// The bridge binds to loopback by default; kiosk deployments
			// that expose it choose their own origin policy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		commands: make(chan Command, 32),
	}
}

// Commands returns the channel the viewer drains each render tick.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Start begins serving in the background.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		logger.Info("remote bridge listening", zap.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("remote bridge stopped", zap.Error(err))
		}
	}()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	last := s.lastState
	s.mu.Unlock()

	logger.Info("remote client connected", zap.String("peer", conn.RemoteAddr().String()))

	// A new client gets the current state right away.
	if last != nil {
		_ = conn.WriteMessage(websocket.TextMessage, last)
	}

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
		logger.Info("remote client disconnected", zap.String("peer", conn.RemoteAddr().String()))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			logger.Warn("bad remote command", zap.Error(err))
			continue
		}
		select {
		case s.commands <- cmd:
		default:
			// The viewer is not draining; drop rather than block the
			// read loop.
			logger.Warn("remote command dropped", zap.String("action", cmd.Action))
		}
	}
}

// Publish broadcasts the viewer state to all connected clients and caches
// it for clients that connect later.
func (s *Server) Publish(state State) {
	data, err := json.Marshal(state)
	if err != nil {
		logger.Error("marshal remote state", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastState = data

	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Close disconnects all clients and stops the listener.
func (s *Server) Close() {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(ctx)
	}
}
