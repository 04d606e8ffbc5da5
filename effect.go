package main

import (
	"image/color"
	"math"

	"arenagame/audio"
	"arenagame/model"
)

const (
	hitIndicatorTime = 0.25
	particleScale    = 1.0 / 16
)

var (
	muzzleBurst = model.Burst{Count: 6, Speed: 120, Spread: 0.6, Lifetime: 0.15, Color: color.RGBA{255, 220, 120, 255}, Size: 3}
	impactBurst = model.Burst{Count: 8, Speed: 80, Spread: 2 * math.Pi, Lifetime: 0.3, Color: color.RGBA{200, 200, 200, 255}, Size: 2}
	hitBurst    = model.Burst{Count: 12, Speed: 100, Spread: 2 * math.Pi, Lifetime: 0.4, Color: color.RGBA{255, 60, 40, 255}, Size: 3}
	killBurst   = model.Burst{Count: 30, Speed: 160, Spread: 2 * math.Pi, Lifetime: 0.8, Color: color.RGBA{255, 200, 40, 255}, Size: 4}
	pickupBurst = model.Burst{Count: 10, Speed: 60, Spread: 2 * math.Pi, Lifetime: 0.5, Color: color.RGBA{120, 255, 120, 255}, Size: 2}
)

// handleEvents turns simulation events into sounds, particles and the hit marker
func (g *Game) handleEvents(events []model.Event) {
	p := g.level.Player
	for _, ev := range events {
		switch ev.Kind {
		case model.EventShot:
			g.audio.Play(audio.Shoot, 1)
			b := muzzleBurst
			b.Direction = p.Rotation
			g.particles.Emit(ev.Position, b)
		case model.EventImpact:
			g.audio.Play3D(audio.Hit, p.Position, ev.Position, 0.5)
			g.particles.Emit(ev.Position, impactBurst)
		case model.EventHit:
			g.audio.Play3D(audio.Hit, p.Position, ev.Position, 1)
			g.particles.Emit(ev.Position, hitBurst)
			g.crosshairs.ActivateHitIndicator(hitIndicatorTime)
		case model.EventKill:
			g.audio.Play3D(audio.Explosion, p.Position, ev.Position, 1)
			g.particles.Emit(ev.Position, killBurst)
			g.crosshairs.ActivateHitIndicator(hitIndicatorTime)
		case model.EventPickup:
			g.audio.Play(audio.Pickup, 1)
			g.particles.Emit(ev.Position, pickupBurst)
		case model.EventPlayerHurt:
			g.audio.Play(audio.Hurt, 1)
		case model.EventPlayerDied:
			g.audio.Play(audio.Explosion, 1)
		}
	}
}

func (g *Game) appendParticles(out []billboard) []billboard {
	for _, pt := range g.particles.Particles() {
		b := newBillboard(pt.Position, whitePixel, pt.Size*particleScale)
		b.Tint = pt.Color
		b.Alpha = pt.Alpha()
		b.Bright = true
		out = append(out, b)
	}
	return out
}
