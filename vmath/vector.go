// Package vmath holds the small amount of 2D vector math shared by the
// simulation, the raycaster and the server. Positions use geom.Vector2 from
// raycaster-go so entities can be handed to the engine without conversion.
package vmath

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// Add returns a + b
func Add(a, b geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b
func Sub(a, b geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale multiplies both components by s
func Scale(v geom.Vector2, s float64) geom.Vector2 {
	return geom.Vector2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of a and b
func Dot(a, b geom.Vector2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the euclidean magnitude of v
func Length(v geom.Vector2) float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between a and b
func Distance(a, b geom.Vector2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Normalize returns the unit vector of v, zero-safe
func Normalize(v geom.Vector2) geom.Vector2 {
	l := Length(v)
	if l == 0 {
		return geom.Vector2{}
	}
	return geom.Vector2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns (cos a, sin a) * length
func FromAngle(angle, length float64) geom.Vector2 {
	return geom.Vector2{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// Angle returns the heading of v in radians
func Angle(v geom.Vector2) float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates v by angle radians
func Rotate(v geom.Vector2, angle float64) geom.Vector2 {
	sin, cos := math.Sincos(angle)
	return geom.Vector2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Perp returns v rotated a quarter turn clockwise on screen (y-down world)
func Perp(v geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: -v.Y, Y: v.X}
}

// NormalizeAngle wraps an angle into (-Pi, Pi]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// SegmentDistance returns the distance from p to the closest point of the
// segment a-b
func SegmentDistance(a, b, p geom.Vector2) float64 {
	ab := Sub(b, a)
	l2 := Dot(ab, ab)
	if l2 == 0 {
		return Distance(a, p)
	}
	t := Dot(Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(Add(a, Scale(ab, t)), p)
}
