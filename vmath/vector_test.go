package vmath

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNormalize(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		n := Normalize(geom.Vector2{X: 3, Y: 4})
		if !near(Length(n), 1) {
			t.Errorf("length = %v, want 1", Length(n))
		}
		if !near(n.X, 0.6) || !near(n.Y, 0.8) {
			t.Errorf("got %+v, want (0.6, 0.8)", n)
		}
	})

	t.Run("zero vector", func(t *testing.T) {
		n := Normalize(geom.Vector2{})
		if n.X != 0 || n.Y != 0 {
			t.Errorf("got %+v, want zero", n)
		}
	})
}

func TestFromAngleAndPerp(t *testing.T) {
	v := FromAngle(0, 2)
	if !near(v.X, 2) || !near(v.Y, 0) {
		t.Fatalf("FromAngle(0, 2) = %+v", v)
	}

	// facing east in a y-down world, the right hand side is +y
	p := Perp(geom.Vector2{X: 1, Y: 0})
	if !near(p.X, 0) || !near(p.Y, 1) {
		t.Errorf("Perp(east) = %+v, want (0, 1)", p)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{3*math.Pi - 0.5, math.Pi - 0.5},
		{-math.Pi, math.Pi},
		{2*math.Pi + 0.5, 0.5},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); !near(got, c.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAABB(t *testing.T) {
	a := BoxAround(geom.Vector2{X: 10, Y: 10}, 2)
	b := BoxAround(geom.Vector2{X: 13, Y: 10}, 2)
	c := BoxAround(geom.Vector2{X: 14, Y: 10}, 2)

	if !a.Intersects(b) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("touching boxes should not intersect")
	}
	if !a.ContainsPoint(geom.Vector2{X: 8, Y: 8}) {
		t.Error("min corner should be contained")
	}
	if a.ContainsPoint(geom.Vector2{X: 12, Y: 12}) {
		t.Error("max corner should not be contained")
	}
}

func TestSegmentDistance(t *testing.T) {
	a := geom.Vector2{X: 0, Y: 0}
	b := geom.Vector2{X: 10, Y: 0}
	cases := []struct {
		name string
		p    geom.Vector2
		want float64
	}{
		{"above middle", geom.Vector2{X: 5, Y: 3}, 3},
		{"before start", geom.Vector2{X: -4, Y: 3}, 5},
		{"past end", geom.Vector2{X: 13, Y: 4}, 5},
		{"on segment", geom.Vector2{X: 7, Y: 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SegmentDistance(a, b, c.p); !near(got, c.want) {
				t.Errorf("SegmentDistance = %v, want %v", got, c.want)
			}
		})
	}
	if got := SegmentDistance(a, a, geom.Vector2{X: 3, Y: 4}); !near(got, 5) {
		t.Errorf("degenerate segment = %v, want 5", got)
	}
}
