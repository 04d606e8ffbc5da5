package model

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/vmath"
)

// ParticleDamping is applied to particle velocity once per update
const ParticleDamping = 0.95

type Particle struct {
	Position geom.Vector2
	Velocity geom.Vector2
	Life     float64
	MaxLife  float64
	Color    color.RGBA
	Size     float64
}

// Alpha fades linearly with remaining life
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, p.Life/p.MaxLife)
}

// Burst describes one emission
type Burst struct {
	Count     int
	Speed     float64
	Direction float64
	Spread    float64
	Lifetime  float64
	Color     color.RGBA
	Size      float64
}

// ParticleSystem is a bounded pool of short lived particles. When an
// emission overflows the limit the oldest particles are dropped.
type ParticleSystem struct {
	particles []Particle
	limit     int
	rng       *rand.Rand
}

func NewParticleSystem(limit int, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{limit: limit, rng: rng}
}

// Emit spawns b.Count particles at pos. Speed, lifetime and size are each
// randomised to between half and all of the burst value.
func (s *ParticleSystem) Emit(pos geom.Vector2, b Burst) {
	for i := 0; i < b.Count; i++ {
		angle := b.Direction + (s.rng.Float64()-0.5)*b.Spread
		life := b.Lifetime * (0.5 + s.rng.Float64()*0.5)
		s.particles = append(s.particles, Particle{
			Position: pos,
			Velocity: vmath.FromAngle(angle, b.Speed*(0.5+s.rng.Float64()*0.5)),
			Life:     life,
			MaxLife:  life,
			Color:    b.Color,
			Size:     b.Size * (0.5 + s.rng.Float64()*0.5),
		})
	}
	if s.limit > 0 && len(s.particles) > s.limit {
		s.particles = append(s.particles[:0], s.particles[len(s.particles)-s.limit:]...)
	}
}

// Update moves, damps and ages every particle, dropping expired ones in place
func (s *ParticleSystem) Update(dt float64) {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Position = vmath.Add(p.Position, vmath.Scale(p.Velocity, dt))
		p.Velocity = vmath.Scale(p.Velocity, ParticleDamping)
		p.Life -= dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

func (s *ParticleSystem) Len() int {
	return len(s.particles)
}

func (s *ParticleSystem) Clear() {
	s.particles = s.particles[:0]
}
