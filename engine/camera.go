package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// -- camera

// Camera holds the view state for one frame: position, facing direction and
// the camera plane perpendicular to it whose half-length is tan(fov/2)
type Camera struct {
	pos          geom.Vector2
	dir          geom.Vector2
	plane        geom.Vector2
	headingAngle float64
	fovAngle     float64
	w, h         int
	rays         []Ray
	zBuffer      []float64
}

func NewCamera(width, height int, fovDegrees float64) *Camera {
	c := &Camera{}
	c.fovAngle = radians(fovDegrees)
	c.SetHeadingAngle(0)
	c.SetViewSize(width, height)
	return c
}

func (c *Camera) SetViewSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.w, c.h = width, height
	c.rays = make([]Ray, width)
	c.zBuffer = make([]float64, width)
}

func (c *Camera) ViewSize() (int, int) {
	return c.w, c.h
}

func (c *Camera) SetFovAngle(fovDegrees float64) {
	c.fovAngle = radians(fovDegrees)
	c.SetHeadingAngle(c.headingAngle)
}

func (c *Camera) FovAngle() float64 {
	return degrees(c.fovAngle)
}

// SetHeadingAngle points the camera; 0 faces +x, positive turns toward +y
func (c *Camera) SetHeadingAngle(headingAngle float64) {
	c.headingAngle = headingAngle
	c.dir = geom.Vector2{X: math.Cos(headingAngle), Y: math.Sin(headingAngle)}
	c.plane = c.getVecForFov(c.dir)
}

func (c *Camera) HeadingAngle() float64 {
	return c.headingAngle
}

func (c *Camera) SetPosition(pos geom.Vector2) {
	c.pos = pos
}

func (c *Camera) Position() geom.Vector2 {
	return c.pos
}

func (c *Camera) Dir() geom.Vector2 {
	return c.dir
}

func (c *Camera) Plane() geom.Vector2 {
	return c.plane
}

// Rays returns the rays of the last Update, one per screen column
func (c *Camera) Rays() []Ray {
	return c.rays
}

// ZBuffer returns the perpendicular wall distance per screen column
func (c *Camera) ZBuffer() []float64 {
	return c.zBuffer
}

// Update casts one ray per screen column against g and refreshes the
// depth buffer. It reads no state left from previous calls.
func (c *Camera) Update(g Grid) {
	for x := 0; x < c.w; x++ {
		ray := CastRay(g, c.pos, c.RayDir(x))
		ray.Column = x
		c.rays[x] = ray
		c.zBuffer[x] = ray.PerpDist
	}
}

// RayDir returns the direction of the ray through screen column x
func (c *Camera) RayDir(x int) geom.Vector2 {
	cameraX := 2.0*float64(x)/float64(c.w) - 1.0
	return geom.Vector2{
		X: c.dir.X + c.plane.X*cameraX,
		Y: c.dir.Y + c.plane.Y*cameraX,
	}
}

// plane is dir rotated a quarter turn toward +y, scaled to the half fov
func (c *Camera) getVecForFov(dir geom.Vector2) geom.Vector2 {
	half := math.Tan(c.fovAngle / 2)
	return geom.Vector2{X: -dir.Y * half, Y: dir.X * half}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
