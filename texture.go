package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"arenagame/texture"
	"arenagame/world"
)

// TextureManager hands the renderer ebiten images for atlas textures. Each
// texture is converted on first use, after the atlas has produced it.
type TextureManager struct {
	atlas  *texture.Atlas
	images map[string][]*ebiten.Image
}

func NewTextureManager(atlas *texture.Atlas) *TextureManager {
	return &TextureManager{atlas: atlas, images: make(map[string][]*ebiten.Image)}
}

// Frame returns frame i of the named texture, wrapping around its animation.
// nil means the atlas has not produced it yet.
func (t *TextureManager) Frame(name string, i int) *ebiten.Image {
	frames, ok := t.images[name]
	if !ok {
		tex, found := t.atlas.Get(name)
		if !found {
			return nil
		}
		frames = make([]*ebiten.Image, len(tex.Frames))
		for j, f := range tex.Frames {
			frames[j] = ebiten.NewImageFromImage(f)
		}
		t.images[name] = frames
	}
	n := len(frames)
	if n == 0 {
		return nil
	}
	return frames[(i%n+n)%n]
}

// Wall returns the texture for a wall tile id
func (t *TextureManager) Wall(material int) *ebiten.Image {
	return t.Frame(texture.WallName(world.Material(material)), 0)
}
