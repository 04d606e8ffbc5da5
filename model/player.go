package model

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/vmath"
)

// Input is one frame of player intent. Forward and Strafe are in [-1, 1]
// with positive meaning ahead and to the right; Turn is positive clockwise
// on screen.
type Input struct {
	Forward float64
	Strafe  float64
	Turn    float64
	Shoot   bool
}

type Player struct {
	Vitals
	ID            string
	Position      geom.Vector2
	Rotation      float64
	Radius        float64
	Speed         float64
	RotationSpeed float64
	Ammo          int
	MaxAmmo       int
	Score         int
	Weapon        *Weapon
	Moved         bool
}

func NewPlayer(id string, x, y, rotation float64, cfg config.PlayerConfig) *Player {
	p := &Player{
		Vitals:        NewVitals(cfg.MaxHealth),
		ID:            id,
		Position:      geom.Vector2{X: x, Y: y},
		Rotation:      rotation,
		Radius:        cfg.Radius,
		Speed:         cfg.Speed,
		RotationSpeed: cfg.RotationRadians(),
		Ammo:          cfg.MaxAmmo,
		MaxAmmo:       cfg.MaxAmmo,
		Moved:         true,
	}
	return p
}

func (p *Player) Pos() geom.Vector2 {
	return p.Position
}

// Dir returns the unit facing vector
func (p *Player) Dir() geom.Vector2 {
	return vmath.FromAngle(p.Rotation, 1)
}

// Update applies one frame of input. Dead players only tick their weapon.
func (p *Player) Update(dt float64, in Input, w Collider) {
	if p.Weapon != nil {
		p.Weapon.Update(dt)
	}
	if !p.Alive {
		return
	}

	if in.Turn != 0 {
		p.rotate(in.Turn * p.RotationSpeed * dt)
	}

	step := p.Speed * dt
	forward := vmath.FromAngle(p.Rotation, in.Forward*step)
	strafe := vmath.FromAngle(p.Rotation+math.Pi/2, in.Strafe*step)
	move := vmath.Add(forward, strafe)
	if move.X != 0 || move.Y != 0 {
		p.Move(move.X, move.Y, w)
	}
}

// Move slides along walls: each axis is tried on its own so a blocked
// axis does not cancel motion along the other
func (p *Player) Move(dx, dy float64, w Collider) {
	if nx := p.Position.X + dx; dx != 0 && !p.blocked(nx, p.Position.Y, w) {
		p.Position.X = nx
		p.Moved = true
	}
	if ny := p.Position.Y + dy; dy != 0 && !p.blocked(p.Position.X, ny, w) {
		p.Position.Y = ny
		p.Moved = true
	}
}

func (p *Player) blocked(x, y float64, w Collider) bool {
	for _, c := range vmath.BoxAround(geom.Vector2{X: x, Y: y}, p.Radius).Corners() {
		if w.IsWallAt(c.X, c.Y) {
			return true
		}
	}
	return false
}

// rotate player heading angle, kept in (-Pi, Pi]
func (p *Player) rotate(r float64) {
	p.Rotation = vmath.NormalizeAngle(p.Rotation + r)
	p.Moved = true
}

// Shoot fires the equipped weapon if alive, armed and off cooldown
func (p *Player) Shoot(projectileID string) (*Projectile, bool) {
	if !p.Alive || p.Ammo <= 0 || p.Weapon == nil {
		return nil, false
	}
	if !p.Weapon.Fire() {
		return nil, false
	}
	p.Ammo--
	return p.Weapon.SpawnProjectile(projectileID, p.ID, p.Position, p.Rotation), true
}

// AddAmmo refills up to MaxAmmo and returns how much was taken
func (p *Player) AddAmmo(n int) int {
	room := p.MaxAmmo - p.Ammo
	if n > room {
		n = room
	}
	if n < 0 {
		n = 0
	}
	p.Ammo += n
	return n
}

// Respawn revives the player at pos; ammo and score carry over
func (p *Player) Respawn(pos geom.Vector2, rotation float64) {
	p.Revive()
	p.Position = pos
	p.Rotation = rotation
	p.Moved = true
	if p.Weapon != nil {
		p.Weapon.ResetCooldown()
	}
}
