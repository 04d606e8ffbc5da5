// Command termview plays the single player level inside a terminal, drawing
// each raycast column with block characters.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"arenagame/config"
	"arenagame/engine"
	"arenagame/logger"
	"arenagame/model"
	"arenagame/world"
)

const (
	frameInterval = 33 * time.Millisecond
	// a key press keeps acting for this long, terminals only report presses
	holdTime = 150 * time.Millisecond
)

type viewer struct {
	screen tcell.Screen
	cam    *engine.Camera
	level  *model.Level
	cfg    *config.Config

	in      model.Input
	inUntil time.Time
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	in := model.Input{}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		in.Forward = 1
	case tcell.KeyDown:
		in.Forward = -1
	case tcell.KeyLeft:
		in.Turn = -1
	case tcell.KeyRight:
		in.Turn = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			in.Forward = 1
		case 's':
			in.Forward = -1
		case 'a':
			in.Strafe = -1
		case 'd':
			in.Strafe = 1
		case 'q':
			in.Turn = -1
		case 'e':
			in.Turn = 1
		case ' ':
			in.Shoot = true
		case 'r':
			if v.level.Outcome() != model.Running {
				v.level.Reset()
			}
			return true
		}
	}
	v.in = in
	v.inUntil = time.Now().Add(holdTime)
	return true
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	f := renderView(v.cam, v.level, w, h, v.cfg.Client.RenderDistance)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := f.at(x, y)
			v.screen.SetContent(x, y, c.ch, nil, c.style)
		}
	}
	v.screen.Show()
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last), v.cfg.Client.MaxFrameDelta).Seconds()
			last = now
			in := model.Input{}
			if now.Before(v.inUntil) {
				in = v.in
				// one shot per press
				v.in.Shoot = false
			}
			v.level.Step(dt, in)
			v.draw()
		}
	}
}

func main() {
	var configPath, mapPath string
	flag.StringVar(&configPath, "config", "", "path to config.yaml (default: ./config.yaml if present)")
	flag.StringVar(&mapPath, "map", "", "YAML map file (default: built-in arena)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	// logging would scribble over the terminal UI
	logger.Silence()

	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}
	arena := world.Default(cfg.World.TileSize)
	if mapPath != "" {
		if arena, err = world.Load(mapPath, cfg.World.TileSize); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load map: %v\n", err)
			os.Exit(1)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w, h := screen.Size()
	v := &viewer{
		screen: screen,
		cam:    engine.NewCamera(w, h*rowScale, cfg.Client.FOV),
		level:  model.NewLevel(cfg, arena, rand.New(rand.NewSource(time.Now().UnixNano()))),
		cfg:    cfg,
	}
	v.run()
}
