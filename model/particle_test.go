package model

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func TestParticleEmitRanges(t *testing.T) {
	s := NewParticleSystem(100, rand.New(rand.NewSource(1)))
	s.Emit(geom.Vector2{X: 5, Y: 5}, Burst{Count: 20, Speed: 100, Spread: 0, Lifetime: 1, Size: 4, Color: color.RGBA{255, 0, 0, 255}})

	if s.Len() != 20 {
		t.Fatalf("Len = %d, want 20", s.Len())
	}
	for i, p := range s.Particles() {
		speed := math.Hypot(p.Velocity.X, p.Velocity.Y)
		if speed < 50-1e-9 || speed > 100+1e-9 {
			t.Errorf("particle %d speed %v outside [50, 100]", i, speed)
		}
		if p.Velocity.X <= 0 || math.Abs(p.Velocity.Y) > 1e-9 {
			t.Errorf("particle %d velocity %v, want along +x with zero spread", i, p.Velocity)
		}
		if p.Life < 0.5 || p.Life > 1 || p.Size < 2 || p.Size > 4 {
			t.Errorf("particle %d life %v size %v", i, p.Life, p.Size)
		}
		if p.Alpha() != 1 {
			t.Errorf("fresh particle alpha = %v", p.Alpha())
		}
	}
}

func TestParticleLimitKeepsNewest(t *testing.T) {
	s := NewParticleSystem(10, rand.New(rand.NewSource(1)))
	s.Emit(geom.Vector2{}, Burst{Count: 8, Speed: 1, Lifetime: 1, Color: color.RGBA{1, 0, 0, 255}})
	s.Emit(geom.Vector2{}, Burst{Count: 8, Speed: 1, Lifetime: 1, Color: color.RGBA{2, 0, 0, 255}})

	if s.Len() != 10 {
		t.Fatalf("Len = %d, want 10", s.Len())
	}
	ps := s.Particles()
	if ps[0].Color.R != 1 || ps[2].Color.R != 2 || ps[9].Color.R != 2 {
		t.Errorf("wrong particles kept: first=%v third=%v last=%v", ps[0].Color, ps[2].Color, ps[9].Color)
	}
}

func TestParticleUpdate(t *testing.T) {
	s := NewParticleSystem(0, rand.New(rand.NewSource(1)))
	s.particles = []Particle{
		{Velocity: geom.Vector2{X: 10}, Life: 1, MaxLife: 1},
		{Velocity: geom.Vector2{X: 10}, Life: 0.05, MaxLife: 1},
	}
	s.Update(0.1)

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after expiry", s.Len())
	}
	p := s.Particles()[0]
	if math.Abs(p.Position.X-1) > 1e-9 {
		t.Errorf("X = %v, want 1", p.Position.X)
	}
	if math.Abs(p.Velocity.X-10*ParticleDamping) > 1e-9 {
		t.Errorf("velocity = %v, want damped", p.Velocity.X)
	}
	if math.Abs(p.Alpha()-0.9) > 1e-9 {
		t.Errorf("alpha = %v, want 0.9", p.Alpha())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("Clear left particles")
	}
}
