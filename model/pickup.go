package model

import (
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/vmath"
)

type PickupKind int

const (
	AmmoPickup PickupKind = iota
	HealthPickup
)

func (k PickupKind) String() string {
	if k == HealthPickup {
		return "health"
	}
	return "ammo"
}

type Pickup struct {
	Kind      PickupKind
	Position  geom.Vector2
	Amount    int
	Radius    float64
	Collected bool
}

func (p *Pickup) Pos() geom.Vector2 {
	return p.Position
}

// TryCollect gives the pickup to pl when in reach and it would be of use
func (p *Pickup) TryCollect(pl *Player) bool {
	if p.Collected || !pl.Alive {
		return false
	}
	if vmath.Distance(p.Position, pl.Position) >= p.Radius+pl.Radius {
		return false
	}

	switch p.Kind {
	case HealthPickup:
		if pl.Health >= pl.MaxHealth {
			return false
		}
		pl.SetHealth(pl.Health + p.Amount)
	default:
		if pl.AddAmmo(p.Amount) == 0 {
			return false
		}
	}
	p.Collected = true
	return true
}
