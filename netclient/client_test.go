package netclient

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/protocol"
	"arenagame/server"
	"arenagame/world"
)

func startServer(t *testing.T) string {
	t.Helper()
	logger.Silence()

	srv := server.New(config.Default(), world.Default(world.DefaultTileSize))
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Run(ctx)

	ts := httptest.NewServer(srv.GameRouter())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

// waitFor polls c into m until an event of kind arrives
func waitFor(t *testing.T, c *Client, m *Mirror, kind EventKind) Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, msg := range c.Poll() {
			for _, ev := range m.Apply(msg) {
				if ev.Kind == kind {
					return ev
				}
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no event %d within deadline", kind)
	return Event{}
}

func TestClientSession(t *testing.T) {
	url := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	m := NewMirror()

	joined := waitFor(t, c, m, Joined)
	if m.ID == "" || !joined.Info.Alive {
		t.Fatalf("join = %+v", joined)
	}

	info := m.Self
	info.Rotation = 1
	if err := c.SendUpdate(info); err != nil {
		t.Fatalf("SendUpdate: %v", err)
	}
	self := waitFor(t, c, m, Self)
	if self.Info.ID != m.ID {
		t.Errorf("self id = %q, want %q", self.Info.ID, m.ID)
	}

	if err := c.Send(protocol.NewChat("", "gg")); err != nil {
		t.Fatalf("Send chat: %v", err)
	}
	chat := waitFor(t, c, m, ChatReceived)
	if chat.From != m.ID || chat.Text != "gg" {
		t.Errorf("chat = %+v", chat)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after Close")
	}
	if c.Connected() {
		t.Error("still connected after Close")
	}
	if err := c.Send(protocol.NewRespawn()); err != ErrClosed {
		t.Errorf("Send after Close = %v, want ErrClosed", err)
	}
}

func TestDialRefused(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://127.0.0.1:1/ws"); err == nil {
		t.Error("Dial to a closed port succeeded")
	}
}
