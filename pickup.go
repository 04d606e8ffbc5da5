package main

import (
	"image/color"

	"arenagame/model"
	"arenagame/texture"
)

const pickupScale = 0.3

var (
	ammoTint   = color.RGBA{255, 220, 80, 255}
	healthTint = color.RGBA{120, 255, 120, 255}
)

func (g *Game) appendPickups(out []billboard) []billboard {
	img := g.tex.Frame(texture.PickupSprite, 0)
	for _, pk := range g.level.Pickups {
		if pk.Collected {
			continue
		}
		b := newBillboard(pk.Position, img, pickupScale)
		b.Tint = ammoTint
		if pk.Kind == model.HealthPickup {
			b.Tint = healthTint
		}
		out = append(out, b)
	}
	return out
}
