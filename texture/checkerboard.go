package texture

import (
	"image"
	"image/draw"

	"golang.org/x/image/colornames"
)

// CheckerCell is the edge of one checkerboard square
const CheckerCell = 8

// Checkerboard is the texture of last resort: magenta with black squares
// wherever (x/8 + y/8) is even
func Checkerboard(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.Magenta), image.Point{}, draw.Src)
	black := image.NewUniform(colornames.Black)
	for y := 0; y < size; y += CheckerCell {
		for x := 0; x < size; x += CheckerCell {
			if (x/CheckerCell+y/CheckerCell)%2 == 0 {
				draw.Draw(img, image.Rect(x, y, x+CheckerCell, y+CheckerCell), black, image.Point{}, draw.Src)
			}
		}
	}
	return img
}

// CheckerboardResult wraps Checkerboard as a one-frame Result
func CheckerboardResult(size int) *Result {
	return &Result{
		Diffuse:  []*image.RGBA{Checkerboard(size)},
		Metadata: Metadata{Width: size, Height: size, Frames: 1, Source: "fallback"},
	}
}
