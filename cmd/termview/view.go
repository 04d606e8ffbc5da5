package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/engine"
	"arenagame/model"
	"arenagame/world"
)

// terminal cells are about twice as tall as wide, so the camera renders at
// double height and each row samples every other scanline
const rowScale = 2

var shades = []rune{'█', '▓', '▒', '░'}

type cell struct {
	ch    rune
	style tcell.Style
}

// frame is one rendered screen, row-major
type frame struct {
	w, h  int
	cells []cell
}

func newFrame(w, h int) *frame {
	f := &frame{w: w, h: h, cells: make([]cell, w*h)}
	for i := range f.cells {
		f.cells[i] = cell{ch: ' ', style: tcell.StyleDefault}
	}
	return f
}

func (f *frame) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.cells[y*f.w+x] = cell{ch: ch, style: style}
}

func (f *frame) at(x, y int) cell {
	return f.cells[y*f.w+x]
}

func (f *frame) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		f.set(x+i, y, r, style)
	}
}

// shadeRune picks a denser block for nearer walls
func shadeRune(light float64) rune {
	i := int((1 - light) * float64(len(shades)))
	if i < 0 {
		i = 0
	}
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func scaled(m world.Material, f float64) tcell.Color {
	c := m.MapColor()
	return tcell.NewRGBColor(int32(float64(c.R)*f), int32(float64(c.G)*f), int32(float64(c.B)*f))
}

// renderView draws the level from the player's eye into a w x h frame. The
// last row is the status line.
func renderView(cam *engine.Camera, l *model.Level, w, h int, renderDistance float64) *frame {
	f := newFrame(w, h)
	viewRows := h - 1
	if w <= 0 || viewRows <= 0 {
		return f
	}

	ts := l.World.TileSize()
	p := l.Player
	if cw, ch := cam.ViewSize(); cw != w || ch != viewRows*rowScale {
		cam.SetViewSize(w, viewRows*rowScale)
	}
	cam.SetPosition(geom.Vector2{X: p.Position.X / ts, Y: p.Position.Y / ts})
	cam.SetHeadingAngle(p.Rotation)
	cam.Update(l.World)

	ceiling := tcell.StyleDefault.Background(tcell.NewRGBColor(20, 22, 30))
	floor := tcell.StyleDefault.Background(tcell.NewRGBColor(40, 34, 28))
	for y := 0; y < viewRows; y++ {
		style := ceiling
		if y >= viewRows/2 {
			style = floor
		}
		for x := 0; x < w; x++ {
			f.set(x, y, ' ', style)
		}
	}

	dist := renderDistance / ts
	for _, ray := range cam.Rays() {
		if !ray.Hit {
			continue
		}
		start, end, _ := engine.WallSlice(ray.PerpDist, viewRows*rowScale)
		light := engine.Light(ray.PerpDist, dist)
		style := tcell.StyleDefault.Foreground(scaled(world.Material(ray.Material), engine.SideShade(ray.Side)*light))
		ch := shadeRune(light)
		for y := start / rowScale; y <= end/rowScale && y < viewRows; y++ {
			f.set(ray.Column, y, ch, style)
		}
	}

	enemy := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	zBuffer := cam.ZBuffer()
	for _, e := range l.Enemies {
		proj, ok := cam.ProjectSprite(geom.Vector2{X: e.Position.X / ts, Y: e.Position.Y / ts}, 0.6)
		if !ok {
			continue
		}
		for x := proj.StartX; x < proj.EndX; x++ {
			if !proj.StripeVisible(x, zBuffer) {
				continue
			}
			for y := proj.StartY / rowScale; y <= proj.EndY/rowScale && y < viewRows; y++ {
				f.set(x, y, 'M', enemy)
			}
		}
	}

	f.set(w/2, viewRows/2, '+', tcell.StyleDefault.Foreground(tcell.ColorWhite))

	nearest := "-"
	if d := l.NearestEnemy(); !math.IsInf(d, 1) {
		nearest = fmt.Sprintf("%.0f", d)
	}
	status := fmt.Sprintf(" HP %d/%d  AMMO %d  SCORE %d  ENEMIES %d  NEAREST %s  [wasd move, q/e turn, space shoot, r restart, esc quit]",
		p.Health, p.MaxHealth, p.Ammo, p.Score, len(l.Enemies), nearest)
	switch l.Outcome() {
	case model.Won:
		status = " VICTORY - press r to play again"
	case model.Lost:
		status = " YOU DIED - press r to restart"
	}
	f.text(0, h-1, status, tcell.StyleDefault.Reverse(true))
	return f
}
