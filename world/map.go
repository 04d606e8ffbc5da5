// Package world holds the tile grid the game is played on.
//
// Tiles are stored row-major (tiles[row][col]). A value of 0 is open floor,
// any other value is a solid wall whose id selects its material. Positions in
// world units map to cells by floor division with the tile size; everything
// outside the grid counts as wall.
package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/harbdog/raycaster-go/geom"
)

var (
	ErrEmptyGrid  = errors.New("world: grid has no cells")
	ErrRaggedGrid = errors.New("world: grid rows differ in length")
)

// maxSpawnTries bounds rejection sampling before falling back to a scan
const maxSpawnTries = 256

type Map struct {
	name     string
	tiles    [][]int
	width    int
	height   int
	tileSize float64
}

// New validates and copies tiles into an immutable Map
func New(tiles [][]int, tileSize float64) (*Map, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("world: tile size %v must be positive", tileSize)
	}

	width := len(tiles[0])
	grid := make([][]int, len(tiles))
	for row, line := range tiles {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, row, len(line), width)
		}
		grid[row] = append([]int(nil), line...)
	}

	return &Map{
		tiles:    grid,
		width:    width,
		height:   len(grid),
		tileSize: tileSize,
	}, nil
}

// Width in cells
func (m *Map) Width() int { return m.width }

// Height in cells
func (m *Map) Height() int { return m.height }

func (m *Map) TileSize() float64 { return m.tileSize }

func (m *Map) Name() string { return m.name }

// Bounds returns the world size in world units
func (m *Map) Bounds() (w, h float64) {
	return float64(m.width) * m.tileSize, float64(m.height) * m.tileSize
}

// TileAt returns the tile id at a cell, 0 when out of bounds
func (m *Map) TileAt(col, row int) int {
	if !m.InBounds(col, row) {
		return 0
	}
	return m.tiles[row][col]
}

func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.width && row < m.height
}

// IsSolid is the cell form of IsWallAt: out of bounds cells are solid
func (m *Map) IsSolid(col, row int) bool {
	if !m.InBounds(col, row) {
		return true
	}
	return m.tiles[row][col] != 0
}

// CellAt converts a world position to the cell containing it
func (m *Map) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / m.tileSize)), int(math.Floor(y / m.tileSize))
}

// IsWallAt reports whether the world position is inside a wall or outside the grid
func (m *Map) IsWallAt(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return true
	}
	return m.IsSolid(m.CellAt(x, y))
}

// MaterialAt returns the material of the wall at a cell
func (m *Map) MaterialAt(col, row int) Material {
	return Material(m.TileAt(col, row))
}

// CellCenter returns the world position at the centre of a cell
func (m *Map) CellCenter(col, row int) geom.Vector2 {
	return geom.Vector2{
		X: (float64(col) + 0.5) * m.tileSize,
		Y: (float64(row) + 0.5) * m.tileSize,
	}
}

// RandomOpenPosition picks a uniformly random non-wall position. When
// sampling keeps landing in walls it returns the centre of a random open
// cell instead. A map with no open cells yields its centre.
func (m *Map) RandomOpenPosition(rng *rand.Rand) geom.Vector2 {
	w, h := m.Bounds()
	for i := 0; i < maxSpawnTries; i++ {
		x, y := rng.Float64()*w, rng.Float64()*h
		if !m.IsWallAt(x, y) {
			return geom.Vector2{X: x, Y: y}
		}
	}
	if cells := m.OpenCells(); len(cells) > 0 {
		c := cells[rng.Intn(len(cells))]
		return m.CellCenter(c[0], c[1])
	}
	return geom.Vector2{X: w / 2, Y: h / 2}
}

// OpenCells returns every empty cell in row-major order
func (m *Map) OpenCells() [][2]int {
	cells := make([][2]int, 0, m.width*m.height)
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if m.tiles[row][col] == 0 {
				cells = append(cells, [2]int{col, row})
			}
		}
	}
	return cells
}
