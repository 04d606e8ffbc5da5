package main

import (
	"image/color"

	"arenagame/model"
	"arenagame/texture"
)

const enemyScale = 0.6

var enemyAttackTint = color.RGBA{255, 150, 150, 255}

func (g *Game) appendEnemies(out []billboard) []billboard {
	for _, e := range g.level.Enemies {
		if !e.Alive {
			continue
		}
		b := newBillboard(e.Position, g.tex.Frame(texture.EnemySprite, e.Frame), enemyScale)
		if e.State == model.Attack {
			b.Tint = enemyAttackTint
		}
		out = append(out, b)
	}
	return out
}
