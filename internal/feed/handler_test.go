package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/pkg/core/config"
	"github.com/msto63/ecsfault/pkg/core/health"
)

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func quietLogger() *log.Logger {
	return log.NewWithConfig(log.Config{Level: log.LevelError, Output: &bytes.Buffer{}})
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Subscribers() = %d, want %d", hub.Subscribers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return f
}

func TestHandlerStreamsFaults(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewHandler(hub, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	rec := testRecord("missing Transform")
	hub.Publish(rec)

	f := readFrame(t, conn)
	if f.Type != "fault" {
		t.Fatalf("frame type = %q, want fault", f.Type)
	}
	var got journal.Record
	if err := json.Unmarshal(f.Payload, &got); err != nil {
		t.Fatalf("payload decode error = %v", err)
	}
	if got.ID != rec.ID || got.Diagnostic != "[Component] missing Transform (world.cpp:42 in World::get)" {
		t.Errorf("payload = %+v", got)
	}
}

func TestHandlerPing(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewHandler(hub, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv, "")

	tests := []struct {
		send string
		want string
	}{
		{"ping", "pong"},
		{"subscribe", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.send, func(t *testing.T) {
			if err := conn.WriteJSON(Message{Type: tt.send}); err != nil {
				t.Fatalf("WriteJSON() error = %v", err)
			}
			if f := readFrame(t, conn); f.Type != tt.want {
				t.Errorf("reply type = %q, want %q", f.Type, tt.want)
			}
		})
	}
}

func TestHandlerUnsubscribesOnDisconnect(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewHandler(hub, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitForSubscribers(t, hub, 0)
}

func TestHandlerHubClose(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewHandler(hub, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage() error = %v, want going-away close", err)
	}
}

func TestServerRoutes(t *testing.T) {
	hub := NewHub(8)
	s := NewServer(config.FeedConfig{Host: "127.0.0.1", Port: 0}, hub, quietLogger())
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()

	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != health.StatusHealthy || len(report.Checks) != 1 || report.Checks[0].Name != "hub" {
		t.Errorf("health = %+v", report)
	}

	conn := dial(t, srv, "/faults")
	waitForSubscribers(t, hub, 1)
	hub.Publish(testRecord("via server"))
	if f := readFrame(t, conn); f.Type != "fault" {
		t.Errorf("frame type = %q", f.Type)
	}
}

func TestServerHealthChecks(t *testing.T) {
	hub := NewHub(1)
	s := NewServer(config.FeedConfig{}, hub, quietLogger())
	s.RegisterCheck(health.PingCheck("journal", func(ctx context.Context) error {
		return errors.New("database is locked")
	}))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	_, cancel := hub.Subscribe()
	defer cancel()
	hub.Publish(testRecord("one"))
	hub.Publish(testRecord("two"))

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status code = %d, want 503", resp.StatusCode)
	}
	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != health.StatusUnhealthy || len(report.Checks) != 2 {
		t.Fatalf("report = %+v", report)
	}
	if report.Checks[0].Name != "hub" || report.Checks[0].Status != health.StatusDegraded {
		t.Errorf("hub check = %+v", report.Checks[0])
	}
}

func TestServerServeStopsOnCancel(t *testing.T) {
	hub := NewHub(8)
	s := NewServer(config.FeedConfig{Path: "/faults"}, hub, quietLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	resp.Body.Close()

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
