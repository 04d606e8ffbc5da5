package model

import (
	"testing"
	"time"

	"arenagame/config"
	"arenagame/world"
)

type openWorld struct{}

func (openWorld) IsWallAt(x, y float64) bool { return false }

type solidWorld struct{}

func (solidWorld) IsWallAt(x, y float64) bool { return true }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Default()
}

func testArena() *world.Map {
	return world.Default(world.DefaultTileSize)
}

func armedPlayer(t *testing.T, x, y float64) *Player {
	t.Helper()
	cfg := testConfig(t)
	p := NewPlayer("p1", x, y, 0, cfg.Player)
	p.Weapon = NewWeapon("blaster", 250*time.Millisecond, cfg.Projectile.Speed, ProjectileTemplate(cfg.Projectile))
	return p
}
