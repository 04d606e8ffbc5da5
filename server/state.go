package server

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/model"
	"arenagame/protocol"
	"arenagame/vmath"
	"arenagame/world"
)

var (
	ErrInvalidUpdate = errors.New("server: invalid update")
	ErrUnknownPlayer = errors.New("server: unknown player")
)

// spawnTries bounds the search for a spawn point outside walls
const spawnTries = 64

// PlayerState is the server's record of one connected player
type PlayerState struct {
	*model.Player
	LastUpdate    time.Time
	InputSequence int64
}

func (p *PlayerState) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:        p.ID,
		X:         p.Position.X,
		Y:         p.Position.Y,
		Rotation:  p.Rotation,
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Ammo:      p.Ammo,
		Score:     p.Score,
		Alive:     p.Alive,
	}
}

// GameState is the authoritative simulation. It is not safe for
// concurrent use; the server loop goroutine owns it.
type GameState struct {
	cfg         *config.Config
	world       *world.Map
	rng         *rand.Rand
	players     map[string]*PlayerState
	projectiles map[string]*model.Projectile
	nextShot    int
}

func NewGameState(cfg *config.Config, w *world.Map, rng *rand.Rand) *GameState {
	return &GameState{
		cfg:         cfg,
		world:       w,
		rng:         rng,
		players:     make(map[string]*PlayerState),
		projectiles: make(map[string]*model.Projectile),
	}
}

func (g *GameState) PlayerCount() int     { return len(g.players) }
func (g *GameState) ProjectileCount() int { return len(g.projectiles) }

func (g *GameState) Player(id string) (*PlayerState, bool) {
	p, ok := g.players[id]
	return p, ok
}

// SpawnPoint picks a random spawn inside the configured spawn square,
// avoiding walls
func (g *GameState) SpawnPoint() (geom.Vector2, float64) {
	rotation := g.rng.Float64() * 2 * math.Pi
	sc := g.cfg.Server
	for i := 0; i < spawnTries; i++ {
		pos := geom.Vector2{
			X: sc.SpawnMin + g.rng.Float64()*sc.SpawnSpread,
			Y: sc.SpawnMin + g.rng.Float64()*sc.SpawnSpread,
		}
		if !g.world.IsWallAt(pos.X, pos.Y) {
			return pos, rotation
		}
	}
	return g.world.RandomOpenPosition(g.rng), rotation
}

// AddPlayer creates a player at a fresh spawn point
func (g *GameState) AddPlayer(id string, now time.Time) *PlayerState {
	pos, rot := g.SpawnPoint()
	ps := &PlayerState{
		Player:     model.NewPlayer(id, pos.X, pos.Y, rot, g.cfg.Player),
		LastUpdate: now,
	}
	g.players[id] = ps
	return ps
}

// RemovePlayer forgets the player. Its projectiles stay in flight.
func (g *GameState) RemovePlayer(id string) {
	delete(g.players, id)
}

// ApplyUpdate validates a client-reported update and applies it. A
// rejected update leaves the state untouched.
func (g *GameState) ApplyUpdate(id string, u *protocol.Update, now time.Time) error {
	ps, ok := g.players[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}

	if !finite(u.X) || !finite(u.Y) || !finite(u.Rotation) {
		return fmt.Errorf("%w: non-finite position", ErrInvalidUpdate)
	}
	w, h := g.world.Bounds()
	if u.X < 0 || u.X > w || u.Y < 0 || u.Y > h {
		return fmt.Errorf("%w: position (%.1f, %.1f) outside world", ErrInvalidUpdate, u.X, u.Y)
	}
	next := geom.Vector2{X: u.X, Y: u.Y}
	if d := vmath.Distance(ps.Position, next); d > g.cfg.Server.MaxMoveDistance {
		return fmt.Errorf("%w: moved %.1f, max %.1f", ErrInvalidUpdate, d, g.cfg.Server.MaxMoveDistance)
	}

	ps.Position = next
	ps.Rotation = u.Rotation
	ps.SetHealth(u.Health)
	ps.Ammo = max(u.Ammo, 0)
	ps.Score = u.Score
	ps.LastUpdate = now
	if u.InputSequence != nil {
		ps.InputSequence = *u.InputSequence
	} else {
		ps.InputSequence++
	}
	return nil
}

// Shoot spawns a projectile for the player when it has ammo left
func (g *GameState) Shoot(id string, s *protocol.Shoot) (*model.Projectile, bool) {
	ps, ok := g.players[id]
	if !ok || ps.Ammo <= 0 {
		return nil, false
	}
	if !finite(s.X) || !finite(s.Y) || !finite(s.Rotation) {
		return nil, false
	}

	g.nextShot++
	shotID := "proj_" + strconv.Itoa(g.nextShot)
	p := model.NewProjectile(shotID, id, geom.Vector2{X: s.X, Y: s.Y}, s.Rotation, g.cfg.Projectile)
	g.projectiles[shotID] = p
	ps.Ammo--
	return p, true
}

// Respawn revives a dead player at a new spawn point; living players are ignored
func (g *GameState) Respawn(id string) bool {
	ps, ok := g.players[id]
	if !ok || ps.Alive {
		return false
	}
	pos, rot := g.SpawnPoint()
	ps.Respawn(pos, rot)
	return true
}

// Kill describes a projectile that took a player's last health
type Kill struct {
	VictimID  string
	ShooterID string
}

// Step advances projectiles, resolves hits along each projectile's path
// this tick and reports kills
func (g *GameState) Step(dt float64) []Kill {
	from := make(map[string]geom.Vector2, len(g.projectiles))
	for id, p := range g.projectiles {
		from[id] = p.Position
		p.Update(dt, g.world)
	}

	var kills []Kill
	hitRadius := g.cfg.Projectile.HitRadius
	for _, shotID := range sortedKeys(g.projectiles) {
		p := g.projectiles[shotID]
		for _, pid := range sortedKeys(g.players) {
			target := g.players[pid]
			if pid == p.OwnerID || !target.Alive {
				continue
			}
			if !p.Sweeps(from[shotID], target.Position, hitRadius) {
				continue
			}

			p.Alive = false
			if target.TakeDamage(p.Damage) {
				kills = append(kills, Kill{VictimID: pid, ShooterID: p.OwnerID})
				if shooter, ok := g.players[p.OwnerID]; ok {
					shooter.Score += g.cfg.Server.KillScore
				}
			}
			break
		}
	}

	for id, p := range g.projectiles {
		if !p.Alive {
			delete(g.projectiles, id)
		}
	}
	return kills
}

// Expired returns the players whose last update is older than the timeout
func (g *GameState) Expired(now time.Time) []string {
	var ids []string
	for id, ps := range g.players {
		if now.Sub(ps.LastUpdate) > g.cfg.Server.PlayerTimeout {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Snapshot serializes the whole state
func (g *GameState) Snapshot(now time.Time) protocol.State {
	players := make([]protocol.PlayerInfo, 0, len(g.players))
	for _, id := range sortedKeys(g.players) {
		players = append(players, g.players[id].Info())
	}
	projectiles := make([]protocol.ProjectileInfo, 0, len(g.projectiles))
	for _, id := range sortedKeys(g.projectiles) {
		p := g.projectiles[id]
		projectiles = append(projectiles, protocol.ProjectileInfo{
			ID:       p.ID,
			OwnerID:  p.OwnerID,
			X:        p.Position.X,
			Y:        p.Position.Y,
			Rotation: p.Rotation,
		})
	}
	return protocol.NewState(players, projectiles, now.UnixMilli())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
