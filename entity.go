package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/harbdog/raycaster-go/geom"
)

// billboard is anything drawn as a camera facing sprite
type billboard struct {
	// Position in world units
	Position geom.Vector2
	Image    *ebiten.Image
	// Scale is the sprite height relative to a wall
	Scale float64
	Tint  color.RGBA
	Alpha float64
	// self illuminated sprites ignore distance fog
	Bright bool
}

var white = color.RGBA{255, 255, 255, 255}

func newBillboard(pos geom.Vector2, img *ebiten.Image, scale float64) billboard {
	return billboard{Position: pos, Image: img, Scale: scale, Tint: white, Alpha: 1}
}

// billboards gathers every sprite of the current frame
func (g *Game) billboards() []billboard {
	var out []billboard
	out = g.appendEnemies(out)
	out = g.appendPickups(out)
	out = g.appendProjectiles(out)
	out = g.appendRemotePlayers(out)
	out = g.appendParticles(out)
	return out
}
