package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// SpriteProjection is a billboard transformed into camera space and clipped
// to the view. StartX..EndX is half open; StartY..EndY is inclusive.
type SpriteProjection struct {
	TransformX float64
	TransformY float64
	ScreenX    int
	Width      int
	Height     int
	// unclipped left edge, needed to map stripes back to texture columns
	Left   int
	Top    int
	StartX int
	EndX   int
	StartY int
	EndY   int
}

// ProjectSprite transforms a sprite at pos into camera space. scale is the
// sprite height relative to a wall; scaled sprites stand on the floor. The
// second return is false when the sprite is behind the camera or off screen.
func (c *Camera) ProjectSprite(pos geom.Vector2, scale float64) (SpriteProjection, bool) {
	var p SpriteProjection

	spriteX := pos.X - c.pos.X
	spriteY := pos.Y - c.pos.Y

	det := c.plane.X*c.dir.Y - c.dir.X*c.plane.Y
	if det == 0 {
		return p, false
	}
	invDet := 1.0 / det
	p.TransformX = invDet * (c.dir.Y*spriteX - c.dir.X*spriteY)
	p.TransformY = invDet * (-c.plane.Y*spriteX + c.plane.X*spriteY)
	if p.TransformY <= 0 {
		return p, false
	}

	if scale <= 0 {
		scale = 1
	}

	p.ScreenX = int(float64(c.w) / 2 * (1 + p.TransformX/p.TransformY))
	full := math.Abs(float64(c.h) / p.TransformY)
	p.Height = int(full * scale)
	p.Width = p.Height
	if p.Width == 0 || p.Height == 0 {
		return p, false
	}

	// drop the sprite so its base rests where a full-height wall meets the floor
	vMove := int((1 - scale) * full / 2)

	p.Top = -p.Height/2 + c.h/2 + vMove
	p.StartY = p.Top
	if p.StartY < 0 {
		p.StartY = 0
	}
	p.EndY = p.Height/2 + c.h/2 + vMove
	if p.EndY >= c.h {
		p.EndY = c.h - 1
	}

	p.Left = -p.Width/2 + p.ScreenX
	p.StartX = p.Left
	p.EndX = p.Width/2 + p.ScreenX
	if p.EndX <= 0 || p.StartX >= c.w {
		return p, false
	}
	if p.StartX < 0 {
		p.StartX = 0
	}
	if p.EndX > c.w {
		p.EndX = c.w
	}
	return p, true
}

// StripeVisible reports whether the sprite is in front of the wall drawn in
// screen column stripe
func (p SpriteProjection) StripeVisible(stripe int, zBuffer []float64) bool {
	if stripe < 0 || stripe >= len(zBuffer) {
		return false
	}
	return p.TransformY > 0 && p.TransformY < zBuffer[stripe]
}

// TexX maps a screen stripe to a texture column
func (p SpriteProjection) TexX(stripe, texWidth int) int {
	texX := (stripe - p.Left) * texWidth / p.Width
	if texX < 0 {
		return 0
	}
	if texX >= texWidth {
		return texWidth - 1
	}
	return texX
}

// SpriteOrder returns the indices of positions sorted far to near from the camera
func (c *Camera) SpriteOrder(positions []geom.Vector2) []int {
	order := make([]int, len(positions))
	dist := make([]float64, len(positions))
	for i, pos := range positions {
		order[i] = i
		dx, dy := c.pos.X-pos.X, c.pos.Y-pos.Y
		dist[i] = dx*dx + dy*dy
	}
	SortFarToNear(order, dist)
	return order
}

// SortFarToNear comb sorts order and dist together by descending distance
func SortFarToNear(order []int, dist []float64) {
	amount := len(order)
	gap := amount
	swapped := false
	for gap > 1 || swapped {
		gap = (gap * 10) / 13
		if gap == 9 || gap == 10 {
			gap = 11
		}
		if gap < 1 {
			gap = 1
		}
		swapped = false
		for i := 0; i < amount-gap; i++ {
			j := i + gap
			if dist[i] < dist[j] {
				dist[i], dist[j] = dist[j], dist[i]
				order[i], order[j] = order[j], order[i]
				swapped = true
			}
		}
	}
}
