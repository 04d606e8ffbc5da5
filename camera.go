package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/engine"
	"arenagame/world"
)

var (
	ceilingColor = color.RGBA{52, 56, 72, 255}
	floorColor   = color.RGBA{70, 62, 54, 255}
)

// drawWorld renders ceiling, floor and one textured wall strip per column
func (g *Game) drawWorld(scene *ebiten.Image) {
	w, h := g.camera.ViewSize()
	vector.DrawFilledRect(scene, 0, 0, float32(w), float32(h/2), ceilingColor, false)
	vector.DrawFilledRect(scene, 0, float32(h/2), float32(w), float32(h-h/2), floorColor, false)

	renderDistance := g.cfg.Client.RenderDistance / g.level.World.TileSize()
	for _, ray := range g.camera.Rays() {
		if !ray.Hit {
			continue
		}
		start, end, lineHeight := engine.WallSlice(ray.PerpDist, h)
		light := float32(engine.SideShade(ray.Side) * engine.Light(ray.PerpDist, renderDistance))

		tex := g.tex.Wall(ray.Material)
		if tex == nil {
			c := world.Material(ray.Material).MapColor()
			c.R = uint8(float32(c.R) * light)
			c.G = uint8(float32(c.G) * light)
			c.B = uint8(float32(c.B) * light)
			vector.DrawFilledRect(scene, float32(ray.Column), float32(start), 1, float32(end-start+1), c, false)
			continue
		}

		// only the rows of the texture that land on screen are sampled, so
		// walls right in front of the camera do not scale a column by 10^4
		texW, texH := tex.Bounds().Dx(), tex.Bounds().Dy()
		top := h/2 - lineHeight/2
		srcY0 := (start - top) * texH / max(lineHeight, 1)
		srcY1 := (end + 1 - top) * texH / max(lineHeight, 1)
		srcY1 = min(max(srcY1, srcY0+1), texH)
		texX := ray.TexX(texW)

		b := tex.Bounds().Min
		column := tex.SubImage(image.Rect(b.X+texX, b.Y+srcY0, b.X+texX+1, b.Y+srcY1)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, float64(end+1-start)/float64(srcY1-srcY0))
		op.GeoM.Translate(float64(ray.Column), float64(start))
		op.ColorScale.Scale(light, light, light, 1)
		scene.DrawImage(column, op)
	}
}

// updatePlayerCamera moves the camera to the player, in grid units
func (g *Game) updatePlayerCamera(forceUpdate bool) {
	p := g.level.Player
	if !p.Moved && !forceUpdate {
		return
	}
	p.Moved = false

	ts := g.level.World.TileSize()
	g.camera.SetPosition(geom.Vector2{X: p.Position.X / ts, Y: p.Position.Y / ts})
	g.camera.SetHeadingAngle(p.Rotation)
}
