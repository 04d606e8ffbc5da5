package main

import (
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/texture"
)

const projectileScale = 0.15

// appendProjectiles draws local projectiles offline and the server's
// authoritative list online
func (g *Game) appendProjectiles(out []billboard) []billboard {
	img := g.tex.Frame(texture.ProjectileSprite, 0)
	for _, p := range g.level.Projectiles {
		if !p.Alive {
			continue
		}
		b := newBillboard(p.Position, img, projectileScale)
		b.Bright = true
		out = append(out, b)
	}
	for _, p := range g.serverProjectiles {
		b := newBillboard(geom.Vector2{X: p.X, Y: p.Y}, img, projectileScale)
		b.Bright = true
		out = append(out, b)
	}
	return out
}
