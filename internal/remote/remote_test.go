package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dial connects a test client to the server's /ws handler.
func dial(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func readState(t *testing.T, conn *websocket.Conn) State {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return st
}

func TestPublishReachesClient(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	conn, done := dial(t, s)
	defer done()

	// Wait for registration before broadcasting.
	waitClients(t, s, 1)
	s.Publish(State{System: "circulatory", PainLevel: 4})

	st := readState(t, conn)
	if st.System != "circulatory" || st.PainLevel != 4 {
		t.Errorf("state = %+v", st)
	}
}

func TestLateClientGetsLastState(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	s.Publish(State{System: "nervous", SelectedLabel: "Brain"})

	conn, done := dial(t, s)
	defer done()

	st := readState(t, conn)
	if st.System != "nervous" || st.SelectedLabel != "Brain" {
		t.Errorf("late joiner state = %+v", st)
	}
}

func TestClientCommandIsQueued(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	conn, done := dial(t, s)
	defer done()

	cmd := Command{Action: "set_pain", Pain: 7}
	data, _ := json.Marshal(cmd)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-s.Commands():
		if got.Action != "set_pain" || got.Pain != 7 {
			t.Errorf("command = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never arrived")
	}
}

func TestMalformedCommandIgnored(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	conn, done := dial(t, s)
	defer done()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	valid, _ := json.Marshal(Command{Action: "reset_view"})
	if err := conn.WriteMessage(websocket.TextMessage, valid); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-s.Commands():
		if got.Action != "reset_view" {
			t.Errorf("command = %+v, want the valid one only", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("valid command lost after malformed one")
	}
}

func waitClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		count := len(s.clients)
		s.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("never saw %d clients", n)
}
