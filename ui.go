package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/harbdog/raycaster-go/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"arenagame/vmath"
)

const (
	chatLines    = 5
	chatLifetime = 8 * time.Second
)

var (
	hudText    = color.RGBA{235, 235, 235, 255}
	hudShadow  = color.RGBA{0, 0, 0, 180}
	healthFill = color.RGBA{200, 40, 40, 255}
	healthBack = color.RGBA{60, 20, 20, 200}
	ammoLow    = color.RGBA{255, 170, 40, 255}
)

type chatLine struct {
	text string
	at   time.Time
}

// HUD draws the in-game overlay text with a TrueType face
type HUD struct {
	face  text.Face
	small text.Face
	chat  []chatLine
}

func NewHUD() (*HUD, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse hud font: %w", err)
	}
	return &HUD{
		face:  text.NewGoXFace(truetype.NewFace(f, &truetype.Options{Size: 20, DPI: 72, Hinting: font.HintingFull})),
		small: text.NewGoXFace(truetype.NewFace(f, &truetype.Options{Size: 14, DPI: 72, Hinting: font.HintingFull})),
	}, nil
}

func (h *HUD) AddChat(from, msg string) {
	h.chat = append(h.chat, chatLine{text: fmt.Sprintf("%s: %s", from, msg), at: time.Now()})
	if len(h.chat) > chatLines {
		h.chat = h.chat[len(h.chat)-chatLines:]
	}
}

func (h *HUD) drawText(screen *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+1, y+1)
	op.ColorScale.ScaleWithColor(hudShadow)
	text.Draw(screen, s, face, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

func (h *HUD) Draw(screen *ebiten.Image, g *Game) {
	w, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	p := g.level.Player

	// health bar, bottom left
	barW, barH := float32(200), float32(18)
	x, y := float32(16), float32(sh)-barH-16
	frac := float32(0)
	if p.MaxHealth > 0 {
		frac = float32(geom.Clamp(float64(p.Health)/float64(p.MaxHealth), 0, 1))
	}
	vector.DrawFilledRect(screen, x, y, barW, barH, healthBack, false)
	vector.DrawFilledRect(screen, x, y, barW*frac, barH, healthFill, false)
	h.drawText(screen, h.small, fmt.Sprintf("%d / %d", p.Health, p.MaxHealth), float64(x)+6, float64(y)+1, hudText)

	ammoColor := color.Color(hudText)
	if p.Ammo <= p.MaxAmmo/5 {
		ammoColor = ammoLow
	}
	h.drawText(screen, h.face, fmt.Sprintf("AMMO %d", p.Ammo), float64(w)-140, float64(sh)-40, ammoColor)
	h.drawText(screen, h.face, fmt.Sprintf("SCORE %d", p.Score), float64(w)-140, 12, hudText)

	status := fmt.Sprintf("FPS %.0f", ebiten.ActualFPS())
	if g.online() {
		status += fmt.Sprintf("  players %d", len(g.remotes)+1)
	} else {
		status += fmt.Sprintf("  enemies %d", len(g.level.Enemies))
	}
	h.drawText(screen, h.small, status, float64(w)-260, 40, hudText)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  x %.0f  y %.0f  heading %.0f",
		g.level.World.Name(), p.Position.X, p.Position.Y, vmath.Degrees(p.Rotation)), 10, 10)

	now := time.Now()
	line := 0
	for _, c := range h.chat {
		if now.Sub(c.at) > chatLifetime {
			continue
		}
		h.drawText(screen, h.small, c.text, 16, float64(sh)-140+float64(line)*18, hudText)
		line++
	}
}

// DrawLoading shows texture generation progress
func (h *HUD) DrawLoading(screen *ebiten.Image, progress float64) {
	w, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{16, 16, 24, 255})

	barW, barH := float32(w)/2, float32(20)
	x, y := float32(w)/4, float32(sh)/2
	vector.StrokeRect(screen, x, y, barW, barH, 2, hudText, false)
	vector.DrawFilledRect(screen, x+3, y+3, (barW-6)*float32(progress), barH-6, hudText, false)
	h.drawText(screen, h.face, fmt.Sprintf("Generating textures %d%%", int(progress*100)), float64(x), float64(y)-32, hudText)
}
