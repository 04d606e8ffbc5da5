package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/engine"
)

// drawSprites draws billboards far to near, column by column, skipping
// columns where a wall is closer than the sprite
func (g *Game) drawSprites(scene *ebiten.Image, sprites []billboard) {
	ts := g.level.World.TileSize()
	positions := make([]geom.Vector2, len(sprites))
	for i, s := range sprites {
		positions[i] = geom.Vector2{X: s.Position.X / ts, Y: s.Position.Y / ts}
	}

	zBuffer := g.camera.ZBuffer()
	renderDistance := g.cfg.Client.RenderDistance / ts
	for _, i := range g.camera.SpriteOrder(positions) {
		s := sprites[i]
		if s.Image == nil {
			continue
		}
		p, ok := g.camera.ProjectSprite(positions[i], s.Scale)
		if !ok {
			continue
		}
		light := 1.0
		if !s.Bright {
			light = engine.Light(p.TransformY, renderDistance)
		}
		g.drawSprite(scene, s, p, zBuffer, light)
	}
}

func (g *Game) drawSprite(scene *ebiten.Image, s billboard, p engine.SpriteProjection, zBuffer []float64, light float64) {
	if p.EndY < p.StartY {
		return
	}
	bounds := s.Image.Bounds()
	texW, texH := bounds.Dx(), bounds.Dy()

	srcY0 := (p.StartY - p.Top) * texH / p.Height
	srcY1 := (p.EndY + 1 - p.Top) * texH / p.Height
	srcY1 = min(max(srcY1, srcY0+1), texH)
	if srcY0 >= texH {
		return
	}
	scaleY := float64(p.EndY+1-p.StartY) / float64(srcY1-srcY0)

	a := float32(s.Alpha)
	r := float32(light) * float32(s.Tint.R) / 255
	gr := float32(light) * float32(s.Tint.G) / 255
	b := float32(light) * float32(s.Tint.B) / 255

	for stripe := p.StartX; stripe < p.EndX; stripe++ {
		if !p.StripeVisible(stripe, zBuffer) {
			continue
		}
		texX := p.TexX(stripe, texW)
		column := s.Image.SubImage(image.Rect(
			bounds.Min.X+texX, bounds.Min.Y+srcY0,
			bounds.Min.X+texX+1, bounds.Min.Y+srcY1,
		)).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, scaleY)
		op.GeoM.Translate(float64(stripe), float64(p.StartY))
		op.ColorScale.Scale(r*a, gr*a, b*a, a)
		scene.DrawImage(column, op)
	}
}
