package model

import (
	"time"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"

	"arenagame/vmath"
)

const (
	recoilFrames    = 4
	recoilFrameTime = 0.05
)

type Weapon struct {
	Name            string
	cooldown        float64
	rateOfFire      float64
	ProjectileSpeed float64
	projectile      Projectile
	firing          bool
	frameTime       float64
	frame           int
}

// NewWeapon builds a weapon that fires copies of template. cooldown is the
// minimum time between shots.
func NewWeapon(name string, cooldown time.Duration, projectileSpeed float64, template Projectile) *Weapon {
	rate := 0.0
	if cooldown > 0 {
		rate = 1 / cooldown.Seconds()
	}
	return &Weapon{
		Name:            name,
		rateOfFire:      rate,
		ProjectileSpeed: projectileSpeed,
		projectile:      template,
	}
}

// Fire starts the cooldown and the recoil animation; false while cooling down
func (w *Weapon) Fire() bool {
	if w.cooldown > 0 {
		return false
	}
	if w.rateOfFire > 0 {
		w.cooldown = 1 / w.rateOfFire
	}
	w.firing = true
	w.frame = 0
	w.frameTime = 0
	return true
}

// SpawnProjectile clones the template and launches it from pos along angle
func (w *Weapon) SpawnProjectile(id, ownerID string, pos geom.Vector2, angle float64) *Projectile {
	p := &Projectile{}
	if err := copier.Copy(p, &w.projectile); err != nil {
		*p = w.projectile
	}

	p.ID = id
	p.OwnerID = ownerID
	p.Position = pos
	p.Rotation = angle
	p.Velocity = vmath.FromAngle(angle, w.ProjectileSpeed)
	p.Alive = true
	return p
}

func (w *Weapon) OnCooldown() bool {
	return w.cooldown > 0
}

func (w *Weapon) ResetCooldown() {
	w.cooldown = 0
}

// Frame is the current recoil animation frame, 0 when idle
func (w *Weapon) Frame() int {
	return w.frame
}

func (w *Weapon) Firing() bool {
	return w.firing
}

func (w *Weapon) Update(dt float64) {
	if w.cooldown > 0 {
		w.cooldown -= dt
		if w.cooldown < 0 {
			w.cooldown = 0
		}
	}
	if !w.firing {
		return
	}
	w.frameTime += dt
	for w.frameTime >= recoilFrameTime {
		w.frameTime -= recoilFrameTime
		w.frame++
	}
	if w.frame >= recoilFrames {
		w.firing = false
		w.frame = 0
	}
}
