package netclient

import (
	"math/rand"
	"testing"
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/protocol"
	"arenagame/server"
	"arenagame/world"
)

func TestPacerNext(t *testing.T) {
	p := NewPacer(10)

	first := geom.Vector2{X: 100, Y: 100}
	if got := p.Next(first); got != first {
		t.Fatalf("first report = %v, want %v", got, first)
	}

	steps := []struct {
		local geom.Vector2
		want  geom.Vector2
	}{
		{geom.Vector2{X: 104, Y: 100}, geom.Vector2{X: 104, Y: 100}},
		{geom.Vector2{X: 130, Y: 100}, geom.Vector2{X: 114, Y: 100}},
		{geom.Vector2{X: 130, Y: 100}, geom.Vector2{X: 124, Y: 100}},
		{geom.Vector2{X: 130, Y: 100}, geom.Vector2{X: 130, Y: 100}},
	}
	for i, s := range steps {
		if got := p.Next(s.local); got != s.want {
			t.Errorf("step %d: Next(%v) = %v, want %v", i, s.local, got, s.want)
		}
	}

	p.Reset(geom.Vector2{X: 500, Y: 500})
	if got := p.Next(geom.Vector2{X: 500, Y: 503}); got != (geom.Vector2{X: 500, Y: 503}) {
		t.Errorf("after reset = %v", got)
	}
}

func TestPacedUpdatesStayAccepted(t *testing.T) {
	cfg := config.Default()
	state := server.NewGameState(cfg, world.Default(world.DefaultTileSize), rand.New(rand.NewSource(1)))
	start := time.Unix(1000, 0)
	ps := state.AddPlayer("a", start)
	ps.Position = geom.Vector2{X: 500, Y: 680}

	p := NewPacer(cfg.Server.MaxMoveDistance)
	p.Reset(ps.Position)

	// one long frame leaves the local player 18 units ahead, then it stops
	local := geom.Vector2{X: 518, Y: 680}
	var last time.Time
	for i := 0; i < 40; i++ {
		pos := p.Next(local)
		last = start.Add(time.Duration(i+1) * time.Second)
		u := protocol.Update{X: pos.X, Y: pos.Y, Health: ps.Health, Ammo: ps.Ammo}
		if err := state.ApplyUpdate("a", &u, last); err != nil {
			t.Fatalf("update %d rejected: %v", i, err)
		}
	}

	if ps.Position != local {
		t.Errorf("server position = %v, want %v", ps.Position, local)
	}
	if expired := state.Expired(last.Add(time.Second)); len(expired) != 0 {
		t.Errorf("expired = %v, want none", expired)
	}
}
