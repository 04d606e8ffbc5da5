package model

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/vmath"
	"arenagame/world"
)

const (
	ammoPickups   = 3
	ammoAmount    = 20
	healthPickups = 2
	healthAmount  = 25
	pickupRadius  = 16
	// enemies are placed at least this far from the player when the map allows
	enemySpawnClearance = 200
	spawnTries          = 32
)

type Outcome int

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "running"
	}
}

type EventKind int

const (
	EventShot EventKind = iota
	EventImpact
	EventHit
	EventKill
	EventPickup
	EventPlayerHurt
	EventPlayerDied
)

// Event is something the presentation layer reacts to with sound or particles
type Event struct {
	Kind     EventKind
	Position geom.Vector2
}

// Level is the single player simulation: one player against the enemies
// and pickups scattered over a map
type Level struct {
	cfg         *config.Config
	rng         *rand.Rand
	World       *world.Map
	Player      *Player
	Enemies     []*Enemy
	Pickups     []*Pickup
	Projectiles []*Projectile
	nextShot    int
	events      []Event
}

func NewLevel(cfg *config.Config, w *world.Map, rng *rand.Rand) *Level {
	l := &Level{cfg: cfg, rng: rng, World: w}
	l.Reset()
	return l
}

// NewArmedPlayer builds a player carrying the configured weapon
func NewArmedPlayer(id string, x, y, rotation float64, cfg *config.Config) *Player {
	p := NewPlayer(id, x, y, rotation, cfg.Player)
	p.Weapon = NewWeapon("blaster", cfg.Player.ShootCooldown, cfg.Projectile.Speed, ProjectileTemplate(cfg.Projectile))
	return p
}

// Reset restarts the level: fresh player, enemies and pickups
func (l *Level) Reset() {
	start := geom.Vector2{X: l.cfg.Player.StartX, Y: l.cfg.Player.StartY}
	if l.World.IsWallAt(start.X, start.Y) {
		start = l.World.RandomOpenPosition(l.rng)
	}
	l.Player = NewArmedPlayer("local", start.X, start.Y, 0, l.cfg)

	l.Enemies = l.Enemies[:0]
	for i := 0; i < l.cfg.Enemy.Count; i++ {
		l.Enemies = append(l.Enemies, NewEnemy(i, l.enemySpawn(), l.cfg.Enemy))
	}

	l.Pickups = l.Pickups[:0]
	for i := 0; i < ammoPickups+healthPickups; i++ {
		kind, amount := AmmoPickup, ammoAmount
		if i >= ammoPickups {
			kind, amount = HealthPickup, healthAmount
		}
		l.Pickups = append(l.Pickups, &Pickup{
			Kind:     kind,
			Position: l.World.RandomOpenPosition(l.rng),
			Amount:   amount,
			Radius:   pickupRadius,
		})
	}

	l.Projectiles = l.Projectiles[:0]
	l.nextShot = 0
}

func (l *Level) enemySpawn() geom.Vector2 {
	var pos geom.Vector2
	for i := 0; i < spawnTries; i++ {
		pos = l.World.RandomOpenPosition(l.rng)
		if vmath.Distance(pos, l.Player.Position) >= enemySpawnClearance {
			break
		}
	}
	return pos
}

// SetWorld swaps in a reloaded map. Anything left inside a wall is moved
// to a random open position.
func (l *Level) SetWorld(w *world.Map) {
	l.World = w
	relocate := func(pos *geom.Vector2) {
		if w.IsWallAt(pos.X, pos.Y) {
			*pos = w.RandomOpenPosition(l.rng)
		}
	}
	relocate(&l.Player.Position)
	l.Player.Moved = true
	for _, e := range l.Enemies {
		relocate(&e.Position)
	}
	for _, p := range l.Pickups {
		relocate(&p.Position)
	}
}

// Step advances the level by dt seconds and returns what happened
func (l *Level) Step(dt float64, in Input) []Event {
	l.events = l.events[:0]
	if l.Outcome() != Running {
		return l.events
	}

	p := l.Player
	p.Update(dt, in, l.World)
	if in.Shoot {
		if shot, ok := p.Shoot("shot_" + strconv.Itoa(l.nextShot)); ok {
			l.nextShot++
			l.Projectiles = append(l.Projectiles, shot)
			l.emit(EventShot, p.Position)
		}
	}

	l.stepProjectiles(dt)

	for _, e := range l.Enemies {
		wasAlive := p.Alive
		if e.Update(dt, p, l.World) {
			l.emit(EventPlayerHurt, p.Position)
			if wasAlive && !p.Alive {
				l.emit(EventPlayerDied, p.Position)
			}
		}
	}
	l.Enemies = removeDead(l.Enemies)

	pickups := l.Pickups[:0]
	for _, pk := range l.Pickups {
		if pk.TryCollect(p) {
			l.emit(EventPickup, pk.Position)
			continue
		}
		pickups = append(pickups, pk)
	}
	l.Pickups = pickups

	return l.events
}

func (l *Level) stepProjectiles(dt float64) {
	live := l.Projectiles[:0]
	for _, pr := range l.Projectiles {
		pr.Update(dt, l.World)
		if !pr.Alive {
			if pr.Lifetime > 0 {
				l.emit(EventImpact, pr.Position)
			}
			continue
		}
		for _, e := range l.Enemies {
			if !e.Alive || !pr.Hits(e.Position, e.Radius+pr.Radius) {
				continue
			}
			pr.Alive = false
			l.emit(EventHit, e.Position)
			if e.TakeDamage(pr.Damage) {
				l.Player.Score += l.cfg.Enemy.KillScore
				l.emit(EventKill, e.Position)
			}
			break
		}
		if pr.Alive {
			live = append(live, pr)
		}
	}
	l.Projectiles = live
}

func (l *Level) emit(kind EventKind, pos geom.Vector2) {
	l.events = append(l.events, Event{Kind: kind, Position: pos})
}

func removeDead(enemies []*Enemy) []*Enemy {
	alive := enemies[:0]
	for _, e := range enemies {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	return alive
}

// Outcome is Lost once the player dies and Won when every enemy is dead
func (l *Level) Outcome() Outcome {
	switch {
	case !l.Player.Alive:
		return Lost
	case len(l.Enemies) == 0 && l.cfg.Enemy.Count > 0:
		return Won
	default:
		return Running
	}
}

// NearestEnemy returns the distance to the closest living enemy, +Inf when none
func (l *Level) NearestEnemy() float64 {
	best := math.Inf(1)
	for _, e := range l.Enemies {
		best = math.Min(best, vmath.Distance(e.Position, l.Player.Position))
	}
	return best
}
