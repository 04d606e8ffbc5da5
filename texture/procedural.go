package texture

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"arenagame/world"
)

// Palette is a themed set of colours for non-wall textures
type Palette struct {
	Primary, Secondary, Accent, Highlight color.RGBA
}

var palettes = map[string]Palette{
	"banana": {
		Primary:   color.RGBA{241, 196, 15, 255},
		Secondary: color.RGBA{211, 84, 0, 255},
		Accent:    color.RGBA{125, 102, 8, 255},
		Highlight: color.RGBA{249, 231, 159, 255},
	},
	"neon": {
		Primary:   colornames.Magenta,
		Secondary: colornames.Cyan,
		Accent:    colornames.Yellow,
		Highlight: colornames.White,
	},
	"cyberpunk": {
		Primary:   colornames.Cyan,
		Secondary: color.RGBA{255, 0, 128, 255},
		Accent:    colornames.Yellow,
		Highlight: color.RGBA{128, 0, 255, 255},
	},
}

// PaletteFor returns the named palette, banana when unknown
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["banana"]
}

// Procedural renders every texture locally from seeded noise
type Procedural struct {
	Seed int64
}

func NewProcedural(seed int64) *Procedural {
	return &Procedural{Seed: seed}
}

func (p *Procedural) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	seed := p.Seed
	if req.Seed != 0 {
		seed = req.Seed
	}
	noise := NewNoise(seed)

	res := &Result{Metadata: Metadata{
		Width:  req.Width,
		Height: req.Height,
		Frames: req.Frames(),
		Type:   req.TextureType,
		Source: "procedural",
	}}
	for f := 0; f < req.Frames(); f++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img := p.frame(noise, req, f)
		res.Diffuse = append(res.Diffuse, img)
		if req.EnableNormalMap {
			res.Normal = append(res.Normal, NormalMap(img))
		}
		if req.EnableSpecular {
			res.Specular = append(res.Specular, SpecularMap(img))
		}
	}
	return res, nil
}

func (p *Procedural) frame(n Noise, req Request, f int) *image.RGBA {
	w, h := req.Width, req.Height
	pal := PaletteFor(req.Theme)
	switch req.TextureType {
	case Wall:
		return WallTexture(n, materialByName(req.Theme), w, h)
	case Sprite:
		return spriteFrame(pal, w, h, f)
	case Particle, Effect:
		return particleFrame(pal, w, h, f, req.Frames())
	case Weapon:
		return weaponFrame(pal, w, h)
	case Projectile:
		return projectileFrame(pal, w, h)
	case UI:
		return crateFrame(n, pal, w, h)
	default:
		return gradientFrame(pal, w, h)
	}
}

func materialByName(name string) world.Material {
	for _, m := range world.Materials() {
		if m.String() == name {
			return m
		}
	}
	return world.Stone
}

// WallTexture renders one wall material
func WallTexture(n Noise, m world.Material, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, wallPixel(n, m, float64(x), float64(y)))
		}
	}
	return img
}

func wallPixel(n Noise, m world.Material, x, y float64) color.RGBA {
	switch m {
	case world.Brick:
		return brickPixel(n, x, y)
	case world.Metal:
		c := shift(color.RGBA{100, 100, 120, 255}, n.FBM(x, y, 3, 0.3, 0.1)*20)
		if s := math.Abs(n.Value(x*0.1, y, 0.5)); s > 0.6 {
			c = shift(c, (s-0.6)*2.5*80)
		}
		return c
	case world.Concrete:
		c := shift(color.RGBA{160, 160, 150, 255}, (n.FBM(x, y, 5, 0.5, 0.05)+n.FBM(x, y, 3, 0.3, 0.2))*25)
		if s := n.Value(x, y, 0.4); s > 0.4 {
			c = lerp(c, color.RGBA{180, 180, 170, 255}, (s-0.4)*2.5)
		}
		return c
	case world.Wood:
		woods := [3]color.RGBA{{139, 90, 43, 255}, {160, 110, 70, 255}, {180, 130, 90, 255}}
		grain := math.Sin(y*0.3+n.Value(x, y, 0.1)*3)*0.5 + 0.5
		i := int(grain * float64(len(woods)))
		i = max(0, min(len(woods)-1, i))
		return shift(woods[i], n.FBM(x, y, 4, 0.4, 0.2)*20)
	case world.Marble:
		c := shift(color.RGBA{240, 240, 235, 255}, n.Value(x, y, 0.05)*10)
		turbulence := math.Sin(x*0.1 + y*0.05 + n.FBM(x, y, 4, 0.5, 0.02)*8 + n.FBM(x+100, y+100, 3, 0.6, 0.03)*4)
		if v := math.Abs(turbulence); v > 0.7 {
			c = lerp(c, color.RGBA{180, 180, 175, 255}, (v-0.7)*3.33)
		}
		return c
	default:
		c := shift(color.RGBA{120, 120, 110, 255}, (n.FBM(x, y, 4, 0.5, 0.1)+n.FBM(x, y, 2, 0.3, 0.05))*40)
		if n.Value(x, y, 0.3) > 0.3 {
			c = darken(c, 0.7)
		}
		return c
	}
}

const (
	brickWidth  = 16
	brickHeight = 8
	mortarWidth = 2
)

func brickPixel(n Noise, x, y float64) color.RGBA {
	row := int(y) / (brickHeight + mortarWidth)
	offset := (row % 2) * (brickWidth / 2)
	col := (int(x) + offset) / (brickWidth + mortarWidth)
	bx := (int(x) + offset) % (brickWidth + mortarWidth)
	by := int(y) % (brickHeight + mortarWidth)

	if bx < brickWidth && by < brickHeight {
		v := n.FBM(x+float64(col)*100, y+float64(row)*100, 3, 0.4, 0.2) * 30
		return shift(color.RGBA{140, 70, 50, 255}, v)
	}
	return shift(color.RGBA{200, 200, 190, 255}, n.Value(x, y, 0.1)*10)
}

// spriteFrame draws the enemy: a round body and head bobbing with the frame
func spriteFrame(pal Palette, w, h, f int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float64(w), float64(h)
	cx, cy := fw/2, fh/2
	bounce := math.Sin(float64(f)*0.5) * 5 * fh / 128

	fillCircle(img, cx, cy+bounce, fw/3, pal.Secondary)
	fillCircle(img, cx, cy-fh/6+bounce, fw/4, pal.Secondary)
	for _, side := range []float64{-1, 1} {
		ear := vector.NewRasterizer(w, h)
		ear.MoveTo(float32(cx+side*fw/8), float32(cy-fh/4+bounce))
		ear.LineTo(float32(cx+side*fw/6), float32(cy-fh/3+bounce))
		ear.LineTo(float32(cx+side*fw/12), float32(cy-fh/5+bounce))
		ear.ClosePath()
		ear.Draw(img, img.Bounds(), image.NewUniform(pal.Secondary), image.Point{})

		fillCircle(img, cx+side*fw/12, cy-fh/6+bounce, fw/16, colornames.White)
		fillCircle(img, cx+side*fw/12, cy-fh/6+bounce, fw/32, colornames.Black)
	}
	return img
}

// particleFrame is a radial glow that grows and fades over the animation
func particleFrame(pal Palette, w, h, f, frames int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	progress := float64(f) / math.Max(1, float64(frames-1))
	cx, cy := float64(w)/2, float64(h)/2
	radius := cx * (0.3 + 0.7*progress)
	alpha := 1 - progress
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= radius {
				continue
			}
			a := alpha * (1 - d/radius)
			img.SetRGBA(x, y, premultiply(pal.Accent, a))
		}
	}
	return img
}

// weaponFrame outlines a banana-shaped gun with quadratic curves
func weaponFrame(pal Palette, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float32(w), float32(h)

	z := vector.NewRasterizer(w, h)
	z.MoveTo(fw*0.1, fh*0.5)
	z.QuadTo(fw*0.3, fh*0.2, fw*0.7, fh*0.4)
	z.QuadTo(fw*0.9, fh*0.45, fw*0.9, fh*0.6)
	z.QuadTo(fw*0.7, fh*0.6, fw*0.3, fh*0.7)
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(pal.Primary), image.Point{})

	fillCircle(img, float64(w)*0.6, float64(h)*0.45, float64(w)*0.1, premultiply(colornames.White, 0.3))
	return img
}

func projectileFrame(pal Palette, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy)
	fillCircle(img, cx, cy, r*0.9, premultiply(pal.Accent, 0.5))
	fillCircle(img, cx, cy, r*0.6, pal.Primary)
	fillCircle(img, cx, cy, r*0.25, pal.Highlight)
	return img
}

// crateFrame is the ammo pickup: a wooden box with a coloured band
func crateFrame(n Noise, pal Palette, w, h int) *image.RGBA {
	img := WallTexture(n, world.Wood, w, h)
	border := max(1, w/16)
	draw.Draw(img, image.Rect(0, 0, w, border), image.NewUniform(pal.Accent), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h-border, w, h), image.NewUniform(pal.Accent), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h*2/5, w, h*3/5), image.NewUniform(pal.Primary), image.Point{}, draw.Src)
	return img
}

func gradientFrame(pal Palette, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / math.Max(1, float64(h-1))
		c := lerp(pal.Primary, pal.Secondary, t)
		draw.Draw(img, image.Rect(0, y, w, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

func fillCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	b := img.Bounds()
	x0, x1 := max(b.Min.X, int(cx-r)), min(b.Max.X, int(cx+r)+1)
	y0, y1 := max(b.Min.Y, int(cy-r)), min(b.Max.Y, int(cy+r)+1)
	src := image.NewUniform(c)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= r {
				draw.Draw(img, image.Rect(x, y, x+1, y+1), src, image.Point{}, draw.Over)
			}
		}
	}
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

// shift adds v to every channel
func shift(c color.RGBA, v float64) color.RGBA {
	return color.RGBA{clamp8(float64(c.R) + v), clamp8(float64(c.G) + v), clamp8(float64(c.B) + v), c.A}
}

func darken(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{clamp8(float64(c.R) * f), clamp8(float64(c.G) * f), clamp8(float64(c.B) * f), c.A}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 { return clamp8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// premultiply scales an opaque colour to alpha a
func premultiply(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{clamp8(float64(c.R) * a), clamp8(float64(c.G) * a), clamp8(float64(c.B) * a), clamp8(255 * a)}
}
