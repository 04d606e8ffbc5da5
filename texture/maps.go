package texture

import (
	"image"
	"image/color"
	"math"
)

func luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// NormalMap derives a tangent-space normal map from the image brightness
func NormalMap(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	at := func(x, y int) float64 {
		x = max(b.Min.X, min(b.Max.X-1, x))
		y = max(b.Min.Y, min(b.Max.Y-1, y))
		return luminance(src.RGBAAt(x, y))
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nx := -(at(x+1, y) - at(x-1, y)) / 2
			ny := -(at(x, y+1) - at(x, y-1)) / 2
			l := math.Sqrt(nx*nx + ny*ny + 1)
			dst.SetRGBA(x, y, color.RGBA{
				R: clamp8((nx/l + 1) * 0.5 * 255),
				G: clamp8((ny/l + 1) * 0.5 * 255),
				B: clamp8((1/l + 1) * 0.5 * 255),
				A: 255,
			})
		}
	}
	return dst
}

// SpecularMap is the brightness with doubled contrast
func SpecularMap(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := clamp8(((luminance(src.RGBAAt(x, y)) - 0.5) * 2 + 0.5) * 255)
			dst.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return dst
}
