package model

import "github.com/harbdog/raycaster-go/geom"

// Damageable is anything that can be shot or attacked
type Damageable interface {
	TakeDamage(amount int) bool
	IsAlive() bool
}

// Target is a Damageable with a position, used by enemy AI
type Target interface {
	Damageable
	Pos() geom.Vector2
}

// Collider answers wall queries in world units
type Collider interface {
	IsWallAt(x, y float64) bool
}

// Vitals tracks health. Health never goes below zero and Alive flips to
// false in the same call that brings it there.
type Vitals struct {
	Health    int
	MaxHealth int
	Alive     bool
}

func NewVitals(maxHealth int) Vitals {
	return Vitals{Health: maxHealth, MaxHealth: maxHealth, Alive: true}
}

// TakeDamage subtracts amount and reports whether this call killed
func (v *Vitals) TakeDamage(amount int) bool {
	if !v.Alive {
		return false
	}
	v.Health -= amount
	if v.Health <= 0 {
		v.Health = 0
		v.Alive = false
		return true
	}
	return false
}

func (v *Vitals) IsAlive() bool {
	return v.Alive
}

// SetHealth clamps health into [0, MaxHealth] without changing Alive
func (v *Vitals) SetHealth(h int) {
	if h < 0 {
		h = 0
	}
	if h > v.MaxHealth {
		h = v.MaxHealth
	}
	v.Health = h
}

// Revive restores full health
func (v *Vitals) Revive() {
	v.Health = v.MaxHealth
	v.Alive = true
}
