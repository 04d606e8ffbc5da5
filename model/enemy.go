package model

import (
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/vmath"
)

type AIState int

const (
	Idle AIState = iota
	Chase
	Attack
)

func (s AIState) String() string {
	switch s {
	case Chase:
		return "chase"
	case Attack:
		return "attack"
	default:
		return "idle"
	}
}

const animationFrames = 4

// DecideState picks the AI state from the distance to the target alone.
// There is no hysteresis: an enemy at the edge of a range may flip state
// every tick.
func DecideState(dist, chaseRange, attackRange float64) AIState {
	switch {
	case dist < attackRange:
		return Attack
	case dist < chaseRange:
		return Chase
	default:
		return Idle
	}
}

type Enemy struct {
	Vitals
	ID             int
	Position       geom.Vector2
	Rotation       float64
	Radius         float64
	State          AIState
	Speed          float64
	ChaseRange     float64
	AttackRange    float64
	AttackDamage   int
	attackCooldown float64
	attackTimer    float64
	animInterval   float64
	animTime       float64
	Frame          int
}

func NewEnemy(id int, pos geom.Vector2, cfg config.EnemyConfig) *Enemy {
	return &Enemy{
		Vitals:         NewVitals(cfg.Health),
		ID:             id,
		Position:       pos,
		Radius:         cfg.Radius,
		Speed:          cfg.Speed,
		ChaseRange:     cfg.ChaseRange,
		AttackRange:    cfg.AttackRange,
		AttackDamage:   cfg.AttackDamage,
		attackCooldown: cfg.AttackCooldown.Seconds(),
		animInterval:   cfg.AnimationInterval.Seconds(),
	}
}

func (e *Enemy) Pos() geom.Vector2 {
	return e.Position
}

// AttackReady reports whether the next attack can land this tick
func (e *Enemy) AttackReady() bool {
	return e.attackTimer <= 0
}

// Update runs one AI tick against target and reports whether the target
// was hit. A dead target is ignored.
func (e *Enemy) Update(dt float64, target Target, w Collider) bool {
	if !e.Alive {
		return false
	}

	hit := false
	e.State = Idle
	if target != nil && target.IsAlive() {
		tp := target.Pos()
		e.State = DecideState(vmath.Distance(e.Position, tp), e.ChaseRange, e.AttackRange)

		switch e.State {
		case Attack:
			if e.attackTimer <= 0 {
				target.TakeDamage(e.AttackDamage)
				e.attackTimer = e.attackCooldown
				hit = true
			}
		case Chase:
			dir := vmath.Normalize(vmath.Sub(tp, e.Position))
			e.Rotation = vmath.Angle(dir)
			next := vmath.Add(e.Position, vmath.Scale(dir, e.Speed*dt))
			if !w.IsWallAt(next.X, next.Y) {
				e.Position = next
			}
		}
	}

	if e.attackTimer > 0 {
		e.attackTimer -= dt
	}

	e.animTime += dt
	if e.animInterval > 0 && e.animTime > e.animInterval {
		e.Frame = (e.Frame + 1) % animationFrames
		e.animTime = 0
	}
	return hit
}
