package model

import (
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/vmath"
)

// -- projectile

type Projectile struct {
	ID       string
	OwnerID  string
	Position geom.Vector2
	Velocity geom.Vector2
	Rotation float64
	Damage   int
	Radius   float64
	// Lifetime is the remaining time to live in seconds
	Lifetime float64
	Alive    bool
}

// ProjectileTemplate returns an unlaunched projectile carrying the configured stats
func ProjectileTemplate(cfg config.ProjectileConfig) Projectile {
	return Projectile{
		Damage:   cfg.Damage,
		Radius:   cfg.Radius,
		Lifetime: cfg.Lifetime.Seconds(),
	}
}

// NewProjectile launches a projectile directly, without a weapon
func NewProjectile(id, ownerID string, pos geom.Vector2, rotation float64, cfg config.ProjectileConfig) *Projectile {
	p := ProjectileTemplate(cfg)
	p.ID = id
	p.OwnerID = ownerID
	p.Position = pos
	p.Rotation = rotation
	p.Velocity = vmath.FromAngle(rotation, cfg.Speed)
	p.Alive = true
	return &p
}

func (p *Projectile) Pos() geom.Vector2 {
	return p.Position
}

// Update advances the projectile and retires it when its lifetime runs
// out or it flies into a wall
func (p *Projectile) Update(dt float64, w Collider) {
	if !p.Alive {
		return
	}
	p.Position = vmath.Add(p.Position, vmath.Scale(p.Velocity, dt))
	p.Lifetime -= dt
	if p.Lifetime <= 0 || w.IsWallAt(p.Position.X, p.Position.Y) {
		p.Alive = false
	}
}

// Hits reports whether pos lies strictly within radius of the projectile
func (p *Projectile) Hits(pos geom.Vector2, radius float64) bool {
	return vmath.Distance(p.Position, pos) < radius
}

// Sweeps reports whether pos lies strictly within radius of the path the
// projectile travelled from `from` to its current position
func (p *Projectile) Sweeps(from, pos geom.Vector2, radius float64) bool {
	return vmath.SegmentDistance(from, p.Position, pos) < radius
}
