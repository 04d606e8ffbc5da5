package engine

import "math"

const (
	// HorizontalShade darkens walls hit on a horizontal grid line
	HorizontalShade = 0.7
	minLight        = 0.3
)

// SideShade returns the brightness factor of a wall face
func SideShade(s Side) float64 {
	if s == SideHorizontal {
		return HorizontalShade
	}
	return 1
}

// Light fades with distance down to a floor of 0.3; renderDistance <= 0 disables it
func Light(dist, renderDistance float64) float64 {
	if renderDistance <= 0 {
		return 1
	}
	return math.Max(minLight, 1-dist/renderDistance)
}
