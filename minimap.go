// minimap.go
package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/world"
)

const minimapMargin = 10

var (
	minimapFloor  = color.RGBA{30, 30, 30, 220}
	minimapPlayer = color.RGBA{0, 255, 255, 255}
	minimapEnemy  = color.RGBA{255, 0, 0, 255}
	minimapRemote = color.RGBA{60, 140, 255, 255}
	minimapPickup = color.RGBA{255, 220, 0, 255}
)

// whitePixel is the source image for flat coloured triangles
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

type Minimap struct {
	static *ebiten.Image
	cell   float32
	scale  float32 // minimap pixels per world unit
}

// NewMinimap renders the static wall layer once; it is rebuilt when the
// map reloads
func NewMinimap(m *world.Map, cell float32) *Minimap {
	if cell < 2 {
		cell = 2
	}
	img := ebiten.NewImage(int(float32(m.Width())*cell), int(float32(m.Height())*cell))
	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			c := minimapFloor
			if m.IsSolid(col, row) {
				c = m.MaterialAt(col, row).MapColor()
			}
			vector.DrawFilledRect(img, float32(col)*cell, float32(row)*cell, cell, cell, c, false)
		}
	}
	return &Minimap{static: img, cell: cell, scale: cell / float32(m.TileSize())}
}

func (m *Minimap) Draw(screen *ebiten.Image, g *Game) {
	ox := float32(screen.Bounds().Dx()-m.static.Bounds().Dx()) - minimapMargin
	oy := float32(minimapMargin) + 60
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(ox), float64(oy))
	screen.DrawImage(m.static, op)

	at := func(p geom.Vector2) (float32, float32) {
		return ox + float32(p.X)*m.scale, oy + float32(p.Y)*m.scale
	}

	for _, pk := range g.level.Pickups {
		if pk.Collected {
			continue
		}
		x, y := at(pk.Position)
		vector.DrawFilledRect(screen, x-1.5, y-1.5, 3, 3, minimapPickup, false)
	}
	for _, e := range g.level.Enemies {
		x, y := at(e.Position)
		vector.DrawFilledCircle(screen, x, y, m.cell/3, minimapEnemy, false)
	}
	for _, r := range g.remotes {
		if !r.Alive {
			continue
		}
		x, y := at(geom.Vector2{X: r.X, Y: r.Y})
		vector.DrawFilledCircle(screen, x, y, m.cell/3, minimapRemote, false)
	}

	p := g.level.Player
	px, py := at(p.Position)
	m.drawPlayer(screen, px, py, p.Rotation)
}

func (m *Minimap) drawPlayer(screen *ebiten.Image, x, y float32, angle float64) {
	size := m.cell * 0.8
	x1 := x + size*float32(math.Cos(angle))
	y1 := y + size*float32(math.Sin(angle))
	x2 := x + size*float32(math.Cos(angle+2.5))
	y2 := y + size*float32(math.Sin(angle+2.5))
	x3 := x + size*float32(math.Cos(angle-2.5))
	y3 := y + size*float32(math.Sin(angle-2.5))

	r, g, b := float32(minimapPlayer.R)/255, float32(minimapPlayer.G)/255, float32(minimapPlayer.B)/255
	vertices := []ebiten.Vertex{
		{DstX: x1, DstY: y1, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: 1},
		{DstX: x2, DstY: y2, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: 1},
		{DstX: x3, DstY: y3, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: 1},
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whitePixel, nil)
}
