package texture

import (
	"context"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"arenagame/logger"
	"arenagame/world"
)

// Texture is a loaded, ready to draw set of frames
type Texture struct {
	Name     string
	Frames   []*image.RGBA
	Normal   []*image.RGBA
	Specular []*image.RGBA
	Metadata Metadata
	Fallback bool
}

// Frame returns frame i, wrapping around the animation
func (t *Texture) Frame(i int) *image.RGBA {
	if len(t.Frames) == 0 {
		return nil
	}
	i %= len(t.Frames)
	if i < 0 {
		i += len(t.Frames)
	}
	return t.Frames[i]
}

type Spec struct {
	Name    string
	Request Request
}

const (
	EnemySprite      = "enemy"
	WeaponSprite     = "weapon"
	ProjectileSprite = "projectile"
	PickupSprite     = "pickup"
)

// WallName is the atlas key of a wall material
func WallName(m world.Material) string {
	return "wall_" + m.String()
}

// DefaultSpecs lists every texture the game draws
func DefaultSpecs(size int, quality string) []Spec {
	var specs []Spec
	for _, m := range world.Materials() {
		specs = append(specs, Spec{WallName(m), Request{TextureType: Wall, Width: size, Height: size, Quality: quality, Theme: m.String()}})
	}
	return append(specs,
		Spec{EnemySprite, Request{TextureType: Sprite, Width: size * 2, Height: size * 2, Quality: quality, Theme: "banana", AnimationFrames: 4}},
		Spec{WeaponSprite, Request{TextureType: Weapon, Width: size * 4, Height: size * 2, Quality: quality, Theme: "banana"}},
		Spec{ProjectileSprite, Request{TextureType: Projectile, Width: size, Height: size, Quality: quality, Theme: "banana"}},
		Spec{PickupSprite, Request{TextureType: UI, Width: size, Height: size, Quality: quality, Theme: "banana"}},
	)
}

// Atlas loads and caches textures by name. It prefers the remote service
// when one is configured and healthy, then the local generator, and
// finally the checkerboard.
type Atlas struct {
	local        Generator
	remote       *ServiceClient
	fallbackSize int

	mu       sync.RWMutex
	textures map[string]*Texture
	remoteOK bool
	started  bool
	total    int
	loaded   int
}

// NewAtlas builds an atlas; remote may be nil
func NewAtlas(local Generator, remote *ServiceClient, fallbackSize int) *Atlas {
	return &Atlas{
		local:        local,
		remote:       remote,
		fallbackSize: fallbackSize,
		textures:     make(map[string]*Texture),
	}
}

// Probe checks whether the remote service is usable
func (a *Atlas) Probe(ctx context.Context) bool {
	ok := a.remote != nil && a.remote.Healthy(ctx)
	a.mu.Lock()
	a.remoteOK = ok
	a.mu.Unlock()
	if a.remote != nil {
		logger.Log.WithField("available", ok).Info("texture service probed")
	}
	return ok
}

// LoadAll probes the service and loads every spec in order. It is meant to
// run on its own goroutine while the game shows a loading screen.
func (a *Atlas) LoadAll(ctx context.Context, specs []Spec) {
	a.mu.Lock()
	a.started = true
	a.total += len(specs)
	a.mu.Unlock()

	a.Probe(ctx)
	for _, s := range specs {
		a.load(ctx, s)
		a.mu.Lock()
		a.loaded++
		a.mu.Unlock()
	}
}

// Load returns the named texture, generating it on first use
func (a *Atlas) Load(ctx context.Context, s Spec) *Texture {
	if t, ok := a.Get(s.Name); ok {
		return t
	}
	return a.load(ctx, s)
}

func (a *Atlas) load(ctx context.Context, s Spec) *Texture {
	log := logger.Log.WithFields(logrus.Fields{"texture": s.Name})

	a.mu.RLock()
	useRemote := a.remoteOK
	a.mu.RUnlock()

	var res *Result
	var err error
	if useRemote {
		if res, err = a.remote.Generate(ctx, s.Request); err != nil {
			log.WithError(err).Warn("texture service failed, generating locally")
		}
	}
	if res == nil && a.local != nil {
		if res, err = a.local.Generate(ctx, s.Request); err != nil {
			log.WithError(err).Error("local generation failed")
		}
	}

	t := &Texture{Name: s.Name}
	if res == nil || len(res.Diffuse) == 0 {
		log.Warn("using checkerboard texture")
		res = CheckerboardResult(a.fallbackSize)
		t.Fallback = true
	}
	t.Frames = res.Diffuse
	if !t.Fallback {
		t.Frames = fitAll(res.Diffuse, s.Request.Width, s.Request.Height)
	}
	t.Normal = res.Normal
	t.Specular = res.Specular
	t.Metadata = res.Metadata

	a.mu.Lock()
	a.textures[s.Name] = t
	a.mu.Unlock()
	return t
}

func (a *Atlas) Get(name string) (*Texture, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.textures[name]
	return t, ok
}

// Progress is the loaded fraction of everything requested through LoadAll.
// It stays at zero until LoadAll has been called.
func (a *Atlas) Progress() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.started {
		return 0
	}
	if a.total == 0 {
		return 1
	}
	return float64(a.loaded) / float64(a.total)
}

func (a *Atlas) Done() bool {
	return a.Progress() >= 1
}

// fitAll rescales frames that do not match the requested size
func fitAll(frames []*image.RGBA, w, h int) []*image.RGBA {
	if w <= 0 || h <= 0 {
		return frames
	}
	out := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		if f.Bounds().Dx() == w && f.Bounds().Dy() == h {
			out[i] = f
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(dst, dst.Bounds(), f, f.Bounds(), xdraw.Src, nil)
		out[i] = dst
	}
	return out
}
