package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/protocol"
	"arenagame/world"
)

func startServer(t *testing.T, mutate func(*config.Config)) (*Server, string) {
	t.Helper()
	logger.Silence()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	srv := New(cfg, world.Default(world.DefaultTileSize))
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Run(ctx)

	ts := httptest.NewServer(srv.GameRouter())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) any {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	msg, err := protocol.Decode(data)
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

// readUntil skips messages until one of the wanted type arrives
func readUntil(t *testing.T, conn *websocket.Conn, want protocol.MessageType) any {
	t.Helper()
	for i := 0; i < 200; i++ {
		if msg := readMessage(t, conn); protocol.TypeOf(msg) == want {
			return msg
		}
	}
	t.Fatalf("no %s message arrived", want)
	return nil
}

func join(t *testing.T, url string) (*websocket.Conn, *protocol.Init) {
	t.Helper()
	conn := dial(t, url)
	init, ok := readMessage(t, conn).(*protocol.Init)
	if !ok {
		t.Fatal("first message was not init")
	}
	return conn, init
}

func TestJoinSendsInitThenState(t *testing.T) {
	_, url := startServer(t, nil)
	conn, init := join(t, url)

	if init.PlayerID == "" || init.Player.ID != init.PlayerID {
		t.Errorf("init = %+v", init)
	}
	if init.Player.Health != 100 || init.Player.Ammo != 100 || !init.Player.Alive {
		t.Errorf("fresh player = %+v", init.Player)
	}

	state := readUntil(t, conn, protocol.TypeState).(*protocol.State)
	if len(state.Players) != 1 || state.Players[0].ID != init.PlayerID {
		t.Errorf("state players = %+v", state.Players)
	}
}

func TestServerFull(t *testing.T) {
	_, url := startServer(t, func(c *config.Config) { c.Server.MaxPlayers = 1 })
	first, _ := join(t, url)

	second := dial(t, url)
	msg, ok := readMessage(t, second).(*protocol.Error)
	if !ok || msg.Message != "Server full" {
		t.Fatalf("got %#v, want server full error", msg)
	}
	if err := second.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := second.ReadMessage(); err == nil {
		t.Error("rejected connection stayed open")
	}

	// the first player keeps receiving state
	readUntil(t, first, protocol.TypeState)
	readUntil(t, first, protocol.TypeState)
}

func TestBadMessagesKeepConnection(t *testing.T) {
	_, url := startServer(t, nil)
	conn, init := join(t, url)

	for _, frame := range []string{`{not json`, `{"type":"dance"}`, `{"type":"chat","message":"hello"}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatal(err)
		}
	}

	chat := readUntil(t, conn, protocol.TypeChat).(*protocol.Chat)
	if chat.PlayerID != init.PlayerID || chat.Message != "hello" {
		t.Errorf("chat = %+v", chat)
	}
}

func TestChatRelayedToEveryone(t *testing.T) {
	_, url := startServer(t, nil)
	alice, aliceInit := join(t, url)
	bob, _ := join(t, url)

	if err := alice.WriteJSON(protocol.Chat{Type: protocol.TypeChat, PlayerID: "forged", Message: "gg"}); err != nil {
		t.Fatal(err)
	}
	for _, conn := range []*websocket.Conn{alice, bob} {
		chat := readUntil(t, conn, protocol.TypeChat).(*protocol.Chat)
		if chat.PlayerID != aliceInit.PlayerID {
			t.Errorf("chat stamped %q, want %q", chat.PlayerID, aliceInit.PlayerID)
		}
	}
}

func TestShootShowsInState(t *testing.T) {
	_, url := startServer(t, nil)
	conn, init := join(t, url)

	p := init.Player
	if err := conn.WriteJSON(protocol.NewShoot(p.X, p.Y, p.Rotation)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		state := readUntil(t, conn, protocol.TypeState).(*protocol.State)
		if len(state.Players) == 1 && state.Players[0].Ammo == 99 {
			return
		}
	}
	t.Error("shot never reflected in state")
}

func TestDisconnectRemovesPlayer(t *testing.T) {
	_, url := startServer(t, nil)
	watcher, _ := join(t, url)
	leaver, _ := join(t, url)
	leaver.Close()

	for i := 0; i < 100; i++ {
		state := readUntil(t, watcher, protocol.TypeState).(*protocol.State)
		if len(state.Players) == 1 {
			return
		}
	}
	t.Error("departed player still in state")
}

func TestHealthEndpoints(t *testing.T) {
	srv, url := startServer(t, nil)
	join(t, url)
	hs := httptest.NewServer(srv.HealthRouter())
	defer hs.Close()

	t.Run("health", func(t *testing.T) {
		var body healthResponse
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			resp, err := http.Get(hs.URL + "/health")
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			err = json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				t.Fatal(err)
			}
			if body.Players == 1 {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		if body.Status != "healthy" || body.Players != 1 {
			t.Errorf("health = %+v", body)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(hs.URL + "/metrics")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var body metricsResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Goroutines == 0 || body.Memory.Sys == 0 {
			t.Errorf("metrics = %+v", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(hs.URL + "/nope")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestShutdownClosesSessions(t *testing.T) {
	logger.Silence()
	srv := New(config.Default(), world.Default(world.DefaultTileSize))
	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(loopDone)
	}()
	ts := httptest.NewServer(srv.GameRouter())
	defer ts.Close()

	conn, _ := join(t, "ws"+strings.TrimPrefix(ts.URL, "http"))
	cancel()
	<-loopDone

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			t.Error("connection still open after shutdown")
		}
		return
	}
}

func TestTickDropsTimedOutPlayer(t *testing.T) {
	logger.Silence()
	cfg := config.Default()
	timeout := cfg.Server.PlayerTimeout

	var offset atomic.Int64
	srv := New(cfg, world.Default(world.DefaultTileSize))
	srv.now = func() time.Time { return time.Now().Add(time.Duration(offset.Load())) }
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Run(ctx)
	ts := httptest.NewServer(srv.GameRouter())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	stale, _ := join(t, url)
	offset.Store(int64(timeout * 2 / 3))
	watcher, watcherInit := join(t, url)
	offset.Store(int64(timeout + timeout/6))

	if err := stale.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		if _, _, err := stale.ReadMessage(); err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				t.Fatal("timed out player's socket stayed open")
			}
			break
		}
	}

	for i := 0; i < 100; i++ {
		state := readUntil(t, watcher, protocol.TypeState).(*protocol.State)
		if len(state.Players) == 1 && state.Players[0].ID == watcherInit.PlayerID {
			return
		}
	}
	t.Error("timed out player still in state")
}
