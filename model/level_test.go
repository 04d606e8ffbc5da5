package model

import (
	"math/rand"
	"testing"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/world"
)

func newTestLevel(t *testing.T) *Level {
	t.Helper()
	return NewLevel(testConfig(t), testArena(), rand.New(rand.NewSource(42)))
}

func TestLevelSpawns(t *testing.T) {
	l := newTestLevel(t)
	cfg := testConfig(t)

	if got := len(l.Enemies); got != cfg.Enemy.Count {
		t.Fatalf("enemies = %d, want %d", got, cfg.Enemy.Count)
	}
	if got := len(l.Pickups); got != ammoPickups+healthPickups {
		t.Errorf("pickups = %d", got)
	}
	if l.Player.Position != (geom.Vector2{X: cfg.Player.StartX, Y: cfg.Player.StartY}) {
		t.Errorf("player at %v, want configured start", l.Player.Position)
	}
	if l.Player.Weapon == nil {
		t.Error("player is unarmed")
	}
	for _, e := range l.Enemies {
		if l.World.IsWallAt(e.Position.X, e.Position.Y) {
			t.Errorf("enemy %d spawned in a wall at %v", e.ID, e.Position)
		}
	}
	for _, p := range l.Pickups {
		if l.World.IsWallAt(p.Position.X, p.Position.Y) {
			t.Errorf("%s pickup spawned in a wall", p.Kind)
		}
	}
	if l.Outcome() != Running {
		t.Errorf("outcome = %s", l.Outcome())
	}
}

func TestLevelShootingWins(t *testing.T) {
	l := newTestLevel(t)
	l.Pickups = nil
	l.Player.Rotation = 0
	l.Enemies = []*Enemy{NewEnemy(0, geom.Vector2{X: l.Player.Position.X + 200, Y: l.Player.Position.Y}, testConfig(t).Enemy)}

	var shots, hits, kills int
	for i := 0; i < 600 && l.Outcome() == Running; i++ {
		for _, ev := range l.Step(1.0/60, Input{Shoot: true}) {
			switch ev.Kind {
			case EventShot:
				shots++
			case EventHit:
				hits++
			case EventKill:
				kills++
			}
		}
	}

	if l.Outcome() != Won {
		t.Fatalf("outcome = %s after %d shots, %d hits", l.Outcome(), shots, hits)
	}
	if hits != 4 || kills != 1 {
		t.Errorf("hits = %d kills = %d, want 4 and 1", hits, kills)
	}
	if l.Player.Score != testConfig(t).Enemy.KillScore {
		t.Errorf("score = %d", l.Player.Score)
	}
	if l.Player.Ammo != l.Player.MaxAmmo-shots {
		t.Errorf("ammo = %d after %d shots", l.Player.Ammo, shots)
	}

	if evs := l.Step(1.0/60, Input{Shoot: true}); len(evs) != 0 {
		t.Errorf("finished level still produced %d events", len(evs))
	}
}

func TestLevelPlayerDies(t *testing.T) {
	l := newTestLevel(t)
	l.Pickups = nil
	l.Player.SetHealth(2)
	e := NewEnemy(0, geom.Vector2{X: l.Player.Position.X + 10, Y: l.Player.Position.Y}, testConfig(t).Enemy)
	l.Enemies = []*Enemy{e}

	evs := l.Step(0.01, Input{})
	var died bool
	for _, ev := range evs {
		died = died || ev.Kind == EventPlayerDied
	}
	if !died || l.Outcome() != Lost {
		t.Errorf("events %v outcome %s, want death", evs, l.Outcome())
	}
	if l.Player.Health != 0 {
		t.Errorf("health = %d", l.Player.Health)
	}

	l.Reset()
	if l.Outcome() != Running || !l.Player.Alive || l.Player.Score != 0 {
		t.Error("Reset did not restart the level")
	}
}

func TestLevelImpactAndPickup(t *testing.T) {
	l := newTestLevel(t)
	l.Enemies = []*Enemy{NewEnemy(0, geom.Vector2{X: 1100, Y: 800}, testConfig(t).Enemy)}
	l.Player.Ammo = 10
	l.Pickups = []*Pickup{{Kind: AmmoPickup, Position: l.Player.Position, Amount: 20, Radius: pickupRadius}}
	// face the west border wall
	l.Player.Rotation = 3.14159

	var impact, pickup bool
	for i := 0; i < 120; i++ {
		for _, ev := range l.Step(1.0/60, Input{Shoot: i == 0}) {
			impact = impact || ev.Kind == EventImpact
			pickup = pickup || ev.Kind == EventPickup
		}
	}
	if !pickup || len(l.Pickups) != 0 {
		t.Error("pickup under the player was not collected")
	}
	if !impact || len(l.Projectiles) != 0 {
		t.Error("shot into the wall did not impact")
	}
	if l.Player.Ammo != 29 {
		t.Errorf("ammo = %d, want 29", l.Player.Ammo)
	}
}

func TestLevelSetWorldRelocates(t *testing.T) {
	l := newTestLevel(t)
	solid := make([][]int, 4)
	for i := range solid {
		solid[i] = []int{1, 1, 1, 1}
	}
	solid[2][2] = 0
	m, err := world.New(solid, 64)
	if err != nil {
		t.Fatal(err)
	}

	l.SetWorld(m)
	if m.IsWallAt(l.Player.Position.X, l.Player.Position.Y) {
		t.Errorf("player left in a wall at %v", l.Player.Position)
	}
	for _, e := range l.Enemies {
		if m.IsWallAt(e.Position.X, e.Position.Y) {
			t.Errorf("enemy left in a wall at %v", e.Position)
		}
	}
}
