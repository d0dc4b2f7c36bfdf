package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func wsServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn
}

func waitForSessions(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Sessions() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Sessions() never reached %d", want)
}

func TestHub_BroadcastWithZeroSessions(t *testing.T) {
	hub := startHub(t)

	if err := hub.Broadcast("new-order", map[string]string{"id": "o1"}); err != nil {
		t.Fatalf("Broadcast() with zero sessions error = %v", err)
	}
	if n := hub.Sessions(); n != 0 {
		t.Errorf("Sessions() = %d, want 0", n)
	}
}

func TestHub_BroadcastReachesConnectedSession(t *testing.T) {
	hub := startHub(t)
	srv := wsServer(t, hub)

	conn := dial(t, srv)
	defer conn.Close()

	waitForSessions(t, hub, 1)

	if err := hub.Broadcast("new-order", map[string]string{"id": "o1", "city": "Rabat"}); err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if env.Event != "new-order" {
		t.Errorf("envelope event = %q, want %q", env.Event, "new-order")
	}
}

func TestHub_DisconnectLeavesGroup(t *testing.T) {
	hub := startHub(t)
	srv := wsServer(t, hub)

	conn := dial(t, srv)
	waitForSessions(t, hub, 1)

	conn.Close()
	waitForSessions(t, hub, 0)
}
