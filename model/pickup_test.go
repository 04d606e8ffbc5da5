package model

import (
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func TestPickupCollect(t *testing.T) {
	t.Run("ammo in reach", func(t *testing.T) {
		p := armedPlayer(t, 200, 100)
		p.Ammo = 50
		box := &Pickup{Kind: AmmoPickup, Position: geom.Vector2{X: 210, Y: 100}, Amount: 20, Radius: 16}
		if !box.TryCollect(p) {
			t.Fatal("pickup in reach not collected")
		}
		if p.Ammo != 70 || !box.Collected {
			t.Errorf("ammo %d collected %v", p.Ammo, box.Collected)
		}
		if box.TryCollect(p) {
			t.Error("pickup collected twice")
		}
	})

	t.Run("out of reach", func(t *testing.T) {
		p := armedPlayer(t, 200, 100)
		p.Ammo = 50
		box := &Pickup{Kind: AmmoPickup, Position: geom.Vector2{X: 300, Y: 100}, Amount: 20, Radius: 16}
		if box.TryCollect(p) {
			t.Error("pickup collected from afar")
		}
	})

	t.Run("full ammo leaves it", func(t *testing.T) {
		p := armedPlayer(t, 200, 100)
		box := &Pickup{Kind: AmmoPickup, Position: geom.Vector2{X: 200, Y: 100}, Amount: 20, Radius: 16}
		if box.TryCollect(p) {
			t.Error("pickup wasted on full ammo")
		}
	})

	t.Run("health", func(t *testing.T) {
		p := armedPlayer(t, 200, 100)
		p.TakeDamage(30)
		kit := &Pickup{Kind: HealthPickup, Position: geom.Vector2{X: 200, Y: 100}, Amount: 50, Radius: 16}
		if !kit.TryCollect(p) || p.Health != p.MaxHealth {
			t.Errorf("health = %d, want %d", p.Health, p.MaxHealth)
		}
	})
}
