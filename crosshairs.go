package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type Crosshairs struct {
	size     float32
	gap      float32
	hitTimer float64
	color    color.RGBA
	hitColor color.RGBA
}

func NewCrosshairs(size float32) *Crosshairs {
	return &Crosshairs{
		size:     size,
		gap:      size / 3,
		color:    color.RGBA{255, 255, 255, 200},
		hitColor: color.RGBA{255, 60, 60, 255},
	}
}

// ActivateHitIndicator shows the hit marker for d seconds
func (c *Crosshairs) ActivateHitIndicator(d float64) {
	c.hitTimer = d
}

func (c *Crosshairs) IsHitIndicatorActive() bool {
	return c.hitTimer > 0
}

func (c *Crosshairs) Update(dt float64) {
	if c.hitTimer > 0 {
		c.hitTimer -= dt
	}
}

func (c *Crosshairs) Draw(screen *ebiten.Image, cx, cy float32) {
	s, gap := c.size, c.gap
	vector.StrokeLine(screen, cx-s, cy, cx-gap, cy, 2, c.color, false)
	vector.StrokeLine(screen, cx+gap, cy, cx+s, cy, 2, c.color, false)
	vector.StrokeLine(screen, cx, cy-s, cx, cy-gap, 2, c.color, false)
	vector.StrokeLine(screen, cx, cy+gap, cx, cy+s, 2, c.color, false)

	if c.IsHitIndicatorActive() {
		d := s * 0.7
		vector.StrokeLine(screen, cx-d, cy-d, cx-gap, cy-gap, 2, c.hitColor, false)
		vector.StrokeLine(screen, cx+gap, cy+gap, cx+d, cy+d, 2, c.hitColor, false)
		vector.StrokeLine(screen, cx+d, cy-d, cx+gap, cy-gap, 2, c.hitColor, false)
		vector.StrokeLine(screen, cx-gap, cy+gap, cx-d, cy+d, 2, c.hitColor, false)
	}
}
