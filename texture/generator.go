// Package texture produces the images the renderer draws: wall materials,
// sprites, the weapon and projectiles.
//
// Generation sits behind the Generator interface. Procedural renders
// locally, ServiceClient asks a remote texture service over HTTP and
// Handler exposes any Generator as that service. Atlas ties them together
// and never fails: when everything else breaks it hands out Checkerboard.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Type is the kind of texture requested
type Type string

const (
	Wall       Type = "wall"
	Sprite     Type = "sprite"
	Particle   Type = "particle"
	Weapon     Type = "weapon"
	Projectile Type = "projectile"
	Effect     Type = "effect"
	UI         Type = "ui"
)

// MaxSize bounds either dimension of a request
const MaxSize = 1024

var ErrInvalidRequest = errors.New("texture: invalid request")

// Request describes a texture. For walls Theme names the material.
type Request struct {
	TextureType     Type   `json:"texture_type"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Quality         string `json:"quality,omitempty"`
	Theme           string `json:"theme,omitempty"`
	AnimationFrames int    `json:"animation_frames,omitempty"`
	Seed            int64  `json:"seed,omitempty"`
	EnableNormalMap bool   `json:"enable_normal_map,omitempty"`
	EnableSpecular  bool   `json:"enable_specular,omitempty"`
}

// Frames is the number of frames to render, at least one
func (r Request) Frames() int {
	if r.AnimationFrames < 1 {
		return 1
	}
	return r.AnimationFrames
}

func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 || r.Width > MaxSize || r.Height > MaxSize {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRequest, r.Width, r.Height)
	}
	if r.AnimationFrames > 64 {
		return fmt.Errorf("%w: %d frames", ErrInvalidRequest, r.AnimationFrames)
	}
	return nil
}

type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Frames int    `json:"frames"`
	Type   Type   `json:"type"`
	Source string `json:"source,omitempty"`
}

type Result struct {
	Diffuse  []*image.RGBA
	Normal   []*image.RGBA
	Specular []*image.RGBA
	Metadata Metadata
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// QualitySize maps a quality preset to its nominal edge length
func QualitySize(quality string) (int, bool) {
	switch quality {
	case "LOW", "low":
		return 64, true
	case "MEDIUM", "medium":
		return 128, true
	case "HIGH", "high":
		return 256, true
	case "ULTRA", "ultra":
		return 512, true
	case "AAA", "aaa":
		return 1024, true
	}
	return 0, false
}
