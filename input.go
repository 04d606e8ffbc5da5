package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arenagame/model"
	"arenagame/vmath"
)

// handleInput reads the keyboard and mouse into one frame of player intent
// and handles the menu keys
func (g *Game) handleInput() model.Input {
	var in model.Input

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.quit = true
		return in
	}

	// if p, pause game
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		switch g.state {
		case statePlaying:
			g.setState(statePaused)
		case statePaused:
			g.setState(statePlaying)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && (g.state == stateDead || g.state == stateVictory) {
		g.restart()
	}
	if g.state != statePlaying {
		return in
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.sendChat(g.cfg.Client.QuickChat)
	}

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.Forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.Forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn++
	}
	in.Shoot = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if g.cfg.Client.MouseLook {
		g.mouseLook()
	}
	return in
}

// mouseLook turns the player by the cursor delta since the last frame
func (g *Game) mouseLook() {
	x, y := ebiten.CursorPosition()
	if g.mouseX == math.MinInt32 && g.mouseY == math.MinInt32 {
		// initialize first position to establish delta
		if x != 0 && y != 0 {
			g.mouseX, g.mouseY = x, y
		}
		return
	}
	dx := x - g.mouseX
	g.mouseX, g.mouseY = x, y
	if dx != 0 {
		p := g.level.Player
		p.Rotation = vmath.NormalizeAngle(p.Rotation + float64(dx)*g.cfg.Client.MouseSpeed)
		p.Moved = true
	}
}

func (g *Game) captureCursor(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		// reset initial mouse capture position
		g.mouseX, g.mouseY = math.MinInt32, math.MinInt32
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}
