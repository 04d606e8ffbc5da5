package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"arenagame/texture"
)

// recoil offset in screen fractions per animation frame
var recoilKick = []float64{0.06, 0.04, 0.02, 0.01}

// drawWeapon overlays the held weapon at the bottom centre of the scene
func (g *Game) drawWeapon(scene *ebiten.Image) {
	p := g.level.Player
	img := g.tex.Frame(texture.WeaponSprite, 0)
	if img == nil || p.Weapon == nil || !p.Alive {
		return
	}
	w, h := scene.Bounds().Dx(), scene.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	compSize := min(w, h)
	// weapon should only take up 1/3rd of screen space
	scale := (float64(compSize) / 3) / float64(ih)

	kick := 0.0
	if p.Weapon.Firing() {
		if f := p.Weapon.Frame(); f < len(recoilKick) {
			kick = recoilKick[f] * float64(h)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		float64(w)/2-float64(iw)*scale/2,
		float64(h)-float64(ih)*scale+1+kick,
	)
	scene.DrawImage(img, op)
}
