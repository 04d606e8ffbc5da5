package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"arenagame/audio"
	"arenagame/config"
	"arenagame/engine"
	"arenagame/logger"
	"arenagame/model"
	"arenagame/netclient"
	"arenagame/protocol"
	"arenagame/texture"
	"arenagame/world"
)

const dialTimeout = 5 * time.Second

type gameState int

const (
	stateLoading gameState = iota
	statePlaying
	statePaused
	stateDead
	stateVictory
)

func (s gameState) String() string {
	return [...]string{"loading", "playing", "paused", "dead", "victory"}[s]
}

// main game object
type Game struct {
	cfg *config.Config
	log *logrus.Entry

	// window resolution and scaling
	screenWidth  int
	screenHeight int
	renderScale  float64

	level  *model.Level
	camera *engine.Camera
	scene  *ebiten.Image

	atlas      *texture.Atlas
	tex        *TextureManager
	audio      *audio.Manager
	particles  *model.ParticleSystem
	hud        *HUD
	menu       *Menu
	minimap    *Minimap
	crosshairs *Crosshairs

	net               *netclient.Client
	mirror            *netclient.Mirror
	pacer             *netclient.Pacer
	remotes           map[string]protocol.PlayerInfo
	serverProjectiles []protocol.ProjectileInfo

	state     gameState
	lastFrame time.Time
	maps      chan *world.Map
	cancel    context.CancelFunc

	mouseX, mouseY int
	quit           bool
}

type gameOptions struct {
	MapPath   string
	Watch     bool
	ServerURL string
}

// NewGame wires every subsystem and starts texture generation in the
// background. A server that cannot be reached leaves the game offline.
func NewGame(cfg *config.Config, m *world.Map, opts gameOptions) (*Game, error) {
	hud, err := NewHUD()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:          cfg,
		log:          logger.Log.WithField("component", "client"),
		screenWidth:  cfg.Client.ScreenWidth,
		screenHeight: cfg.Client.ScreenHeight,
		renderScale:  cfg.Client.RenderScale,
		hud:          hud,
		mirror:       netclient.NewMirror(),
		pacer:        netclient.NewPacer(cfg.Server.MaxMoveDistance),
		maps:         make(chan *world.Map, 1),
		cancel:       cancel,
		lastFrame:    time.Now(),
		state:        stateLoading,
	}
	if g.renderScale <= 0 {
		g.renderScale = 1
	}

	levelCfg := cfg
	if opts.ServerURL != "" {
		dialCtx, done := context.WithTimeout(ctx, dialTimeout)
		g.net, err = netclient.Dial(dialCtx, opts.ServerURL)
		done()
		if err != nil {
			g.log.WithError(err).WithField("url", opts.ServerURL).Warn("server unreachable, playing offline")
			g.net = nil
		} else {
			// other players replace the enemies online
			online := *cfg
			online.Enemy.Count = 0
			levelCfg = &online
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g.level = model.NewLevel(levelCfg, m, rng)
	if g.online() {
		g.level.Pickups = nil
	}

	//--init camera and renderer--//
	w := int(float64(g.screenWidth) * g.renderScale)
	h := int(float64(g.screenHeight) * g.renderScale)
	g.camera = engine.NewCamera(w, h, cfg.Client.FOV)
	g.scene = ebiten.NewImage(w, h)

	var remote *texture.ServiceClient
	if cfg.Textures.UseService {
		remote = texture.NewServiceClient(cfg.Textures.ServiceURL, cfg.Textures.RequestTimeout, cfg.Textures.HealthTimeout)
	}
	g.atlas = texture.NewAtlas(texture.NewProcedural(cfg.Textures.Seed), remote, cfg.Textures.Size)
	g.tex = NewTextureManager(g.atlas)
	go g.atlas.LoadAll(ctx, texture.DefaultSpecs(cfg.Textures.Size, cfg.Textures.Quality))

	g.audio = audio.NewManager(cfg.Audio)
	_ = g.audio.Init()

	g.particles = model.NewParticleSystem(cfg.Client.MaxParticles, rng)
	g.crosshairs = NewCrosshairs(12)
	g.minimap = NewMinimap(m, float32(m.TileSize()*cfg.Client.MinimapScale))
	g.menu = NewMenu(g.screenWidth, g.screenHeight, menuActions{
		Resume:  func() { g.setState(statePlaying) },
		Restart: g.restart,
		Quit:    func() { g.quit = true },
	})

	if opts.Watch && opts.MapPath != "" {
		go g.watchMap(ctx, opts.MapPath)
	}

	g.mouseX, g.mouseY = math.MinInt32, math.MinInt32
	g.updatePlayerCamera(true)
	return g, nil
}

func (g *Game) watchMap(ctx context.Context, path string) {
	err := world.Watch(ctx, path, g.level.World.TileSize(), func(m *world.Map) {
		select {
		case g.maps <- m:
		default:
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		g.log.WithError(err).Warn("map watch stopped")
	}
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

// Update advances the game by the wall time since the previous frame,
// clamped so a stall does not tunnel anything through walls
func (g *Game) Update() error {
	now := time.Now()
	elapsed := now.Sub(g.lastFrame)
	g.lastFrame = now
	if limit := g.cfg.Client.MaxFrameDelta; limit > 0 && elapsed > limit {
		elapsed = limit
	}
	dt := elapsed.Seconds()

	select {
	case m := <-g.maps:
		g.setWorld(m)
	default:
	}
	if g.online() {
		g.pollNetwork()
	}

	if g.state == stateLoading {
		if g.atlas.Done() {
			g.setState(statePlaying)
		}
		return nil
	}

	in := g.handleInput()
	if g.quit {
		return ebiten.Termination
	}

	if g.state == statePlaying {
		var events []model.Event
		if g.online() {
			events = g.stepOnline(dt, in)
		} else {
			events = g.level.Step(dt, in)
		}
		g.handleEvents(events)
		g.checkOutcome()
	} else {
		g.menu.Update()
		if g.quit {
			return ebiten.Termination
		}
		// keep the session alive while the menu is open
		if g.online() {
			g.sendUpdate()
		}
	}

	g.particles.Update(dt)
	g.crosshairs.Update(dt)
	g.updatePlayerCamera(false)
	return nil
}

func (g *Game) checkOutcome() {
	switch g.level.Outcome() {
	case model.Lost:
		g.setState(stateDead)
	case model.Won:
		g.audio.Play(audio.Meow, 1)
		g.setState(stateVictory)
	}
}

func (g *Game) setState(s gameState) {
	if g.state == s {
		return
	}
	g.log.WithFields(logrus.Fields{"from": g.state, "to": s}).Debug("state change")
	g.state = s

	switch s {
	case statePlaying:
		g.captureCursor(true)
		return
	case statePaused:
		g.menu.Show("Paused", true)
	case stateDead:
		g.menu.Show(fmt.Sprintf("You died  -  score %d", g.level.Player.Score), false)
	case stateVictory:
		g.menu.Show(fmt.Sprintf("Victory!  -  score %d", g.level.Player.Score), false)
	}
	g.captureCursor(false)
}

// restart begins a new round offline or asks the server for a respawn
func (g *Game) restart() {
	if g.online() {
		if err := g.net.Send(protocol.NewRespawn()); err != nil {
			g.log.WithError(err).Warn("respawn not sent")
		}
		return
	}
	g.level.Reset()
	g.particles.Clear()
	g.updatePlayerCamera(true)
	g.setState(statePlaying)
}

func (g *Game) setWorld(m *world.Map) {
	g.level.SetWorld(m)
	g.minimap = NewMinimap(m, float32(m.TileSize()*g.cfg.Client.MinimapScale))
	g.updatePlayerCamera(true)
	g.hud.AddChat("map", fmt.Sprintf("reloaded %s", m.Name()))
}

type layer struct {
	name string
	draw func(screen *ebiten.Image)
}

// screenLayers lists what Draw paints over the loaded level, bottom first
func (g *Game) screenLayers() []layer {
	return []layer{
		{"scene", g.drawScene},
		{"hud", g.drawHUD},
		{"minimap", func(screen *ebiten.Image) { g.minimap.Draw(screen, g) }},
		{"weapon", g.drawWeapon},
	}
}

// drawScene raycasts walls and sprites into the scaled scene buffer
func (g *Game) drawScene(screen *ebiten.Image) {
	g.camera.Update(g.level.World)
	g.drawWorld(g.scene)
	g.drawSprites(g.scene, g.billboards())

	op := &ebiten.DrawImageOptions{}
	if g.renderScale != 1.0 {
		op.Filter = ebiten.FilterNearest
		op.GeoM.Scale(1/g.renderScale, 1/g.renderScale)
	}
	screen.DrawImage(g.scene, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	g.hud.Draw(screen, g)
	g.crosshairs.Draw(screen, float32(g.screenWidth)/2, float32(g.screenHeight)/2)
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.state == stateLoading {
		g.hud.DrawLoading(screen, g.atlas.Progress())
		return
	}

	for _, l := range g.screenLayers() {
		l.draw(screen)
	}

	if g.state != statePlaying {
		g.menu.Draw(screen)
	}
}

// Close stops background work and releases the audio device and connection
func (g *Game) Close() {
	g.cancel()
	g.audio.Close()
	if g.net != nil {
		_ = g.net.Close()
	}
}
