package vmath

import "github.com/harbdog/raycaster-go/geom"

// AABB is an axis-aligned box in world units
type AABB struct {
	Min, Max geom.Vector2
}

// BoxAround returns the box of half-extent r centred on p
func BoxAround(p geom.Vector2, r float64) AABB {
	return AABB{
		Min: geom.Vector2{X: p.X - r, Y: p.Y - r},
		Max: geom.Vector2{X: p.X + r, Y: p.Y + r},
	}
}

// Intersects reports whether the boxes overlap, touching edges excluded
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}

// ContainsPoint reports whether p lies inside b, min edge inclusive
func (b AABB) ContainsPoint(p geom.Vector2) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Corners returns the four corners, clockwise from Min
func (b AABB) Corners() [4]geom.Vector2 {
	return [4]geom.Vector2{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}
