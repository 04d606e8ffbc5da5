package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapSpec is the on-disk form of a map
type MapSpec struct {
	Name  string  `yaml:"name"`
	Tiles [][]int `yaml:"tiles"`
}

// Load reads a YAML map file
func Load(filename string, tileSize float64) (*Map, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("world: load %s: %w", filename, err)
	}
	return Parse(data, filename, tileSize)
}

// Parse decodes a YAML map document; name is only used in errors
func Parse(data []byte, name string, tileSize float64) (*Map, error) {
	var spec MapSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("world: unmarshal %s: %w", name, err)
	}

	m, err := New(spec.Tiles, tileSize)
	if err != nil {
		return nil, fmt.Errorf("world: build %s: %w", name, err)
	}
	m.name = spec.Name
	return m, nil
}

// Spec returns the serialisable form of m
func (m *Map) Spec() MapSpec {
	tiles := make([][]int, m.height)
	for row := range m.tiles {
		tiles[row] = append([]int(nil), m.tiles[row]...)
	}
	return MapSpec{Name: m.name, Tiles: tiles}
}
