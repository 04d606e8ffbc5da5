// Package engine is the DDA raycaster: it walks rays through a tile grid,
// projects wall columns and sprites onto a camera plane, and keeps the per
// column depth buffer the renderer uses to occlude sprites.
//
// All coordinates are in grid units (world units divided by the tile size).
package engine

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	// MaxSteps bounds the grid walk of a single ray
	MaxSteps = 2048

	// MinDistance replaces non-finite or non-positive wall distances
	MinDistance = 1e-4

	// deltaInf stands in for 1/0 when a ray is parallel to an axis
	deltaInf = 1e30
)

// Grid is the read-only view of the map the raycaster needs
type Grid interface {
	Width() int
	Height() int
	TileAt(col, row int) int
}

// Side tells which family of grid lines a ray crossed last
type Side int

const (
	// SideVertical is a crossing of a vertical grid line (an x step)
	SideVertical Side = iota
	// SideHorizontal is a crossing of a horizontal grid line (a y step)
	SideHorizontal
)

func (s Side) String() string {
	if s == SideHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Ray is the result of casting one screen column
type Ray struct {
	Column   int
	Origin   geom.Vector2
	Dir      geom.Vector2
	MapX     int
	MapY     int
	Hit      bool
	Side     Side
	PerpDist float64
	// WallX is the fractional position of the hit along the wall face, in [0,1)
	WallX    float64
	HitPoint geom.Vector2
	// Material is the tile id that was hit, 0 if the ray left the grid
	Material int
}

// CastRay walks the grid from origin along dir until it hits a non-empty
// tile, leaves the grid, or exceeds MaxSteps
func CastRay(g Grid, origin, dir geom.Vector2) Ray {
	r := Ray{Origin: origin, Dir: dir}

	mapX := int(math.Floor(origin.X))
	mapY := int(math.Floor(origin.Y))

	deltaDistX := deltaInf
	if dir.X != 0 {
		deltaDistX = math.Abs(1 / dir.X)
	}
	deltaDistY := deltaInf
	if dir.Y != 0 {
		deltaDistY = math.Abs(1 / dir.Y)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if dir.X < 0 {
		stepX = -1
		sideDistX = (origin.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1.0 - origin.X) * deltaDistX
	}
	if dir.Y < 0 {
		stepY = -1
		sideDistY = (origin.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1.0 - origin.Y) * deltaDistY
	}

	w, h := g.Width(), g.Height()
	side := SideVertical
	for step := 0; step < MaxSteps; step++ {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = SideVertical
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = SideHorizontal
		}

		if mapX < 0 || mapY < 0 || mapX >= w || mapY >= h {
			break
		}
		if tile := g.TileAt(mapX, mapY); tile != 0 {
			r.Hit = true
			r.Material = tile
			break
		}
	}

	var perp float64
	if side == SideVertical {
		perp = sideDistX - deltaDistX
	} else {
		perp = sideDistY - deltaDistY
	}
	if math.IsNaN(perp) || math.IsInf(perp, 0) || perp <= 0 {
		perp = MinDistance
	}

	var wallX float64
	if side == SideVertical {
		wallX = origin.Y + perp*dir.Y
	} else {
		wallX = origin.X + perp*dir.X
	}
	wallX -= math.Floor(wallX)

	r.MapX, r.MapY = mapX, mapY
	r.Side = side
	r.PerpDist = perp
	r.WallX = wallX
	r.HitPoint = geom.Vector2{X: origin.X + dir.X*perp, Y: origin.Y + dir.Y*perp}
	return r
}

// TexX maps WallX to a texture column, mirrored on the faces where the
// texture would otherwise appear flipped
func (r Ray) TexX(texWidth int) int {
	texX := int(r.WallX * float64(texWidth))
	if r.Side == SideVertical && r.Dir.X > 0 {
		texX = texWidth - texX - 1
	}
	if r.Side == SideHorizontal && r.Dir.Y < 0 {
		texX = texWidth - texX - 1
	}
	if texX < 0 {
		texX = 0
	}
	if texX >= texWidth {
		texX = texWidth - 1
	}
	return texX
}

// WallSlice returns the clipped vertical extent of a wall column
func WallSlice(perpDist float64, viewHeight int) (drawStart, drawEnd, lineHeight int) {
	if perpDist < MinDistance {
		perpDist = MinDistance
	}
	lh := float64(viewHeight) / perpDist
	if lh > math.MaxInt32 {
		lh = math.MaxInt32
	}
	lineHeight = int(lh)

	drawStart = -lineHeight/2 + viewHeight/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd = lineHeight/2 + viewHeight/2
	if drawEnd >= viewHeight {
		drawEnd = viewHeight - 1
	}
	return drawStart, drawEnd, lineHeight
}
