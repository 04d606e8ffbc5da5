package world

import "image/color"

// Material is a wall tile id
type Material int

const (
	Empty Material = iota
	Stone
	Brick
	Metal
	Concrete
	Wood
	Marble
)

var materialNames = map[Material]string{
	Stone:    "stone",
	Brick:    "brick",
	Metal:    "metal",
	Concrete: "concrete",
	Wood:     "wood",
	Marble:   "marble",
}

// String returns the material name; unknown ids render as stone
func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return materialNames[Stone]
}

// MaterialName maps a raw tile id to its material name
func MaterialName(id int) string {
	return Material(id).String()
}

// Materials lists every named material in id order
func Materials() []Material {
	return []Material{Stone, Brick, Metal, Concrete, Wood, Marble}
}

// MapColor is the flat colour used by the minimap and untextured rendering
func (m Material) MapColor() color.RGBA {
	switch m {
	case Brick:
		return color.RGBA{140, 70, 50, 255}
	case Metal:
		return color.RGBA{100, 100, 120, 255}
	case Concrete:
		return color.RGBA{160, 160, 150, 255}
	case Wood:
		return color.RGBA{120, 80, 40, 255}
	case Marble:
		return color.RGBA{240, 240, 235, 255}
	default:
		return color.RGBA{120, 120, 110, 255}
	}
}
