// main.go
package main

import (
	"errors"
	"flag"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/world"
)

func main() {
	var configPath, mapPath, serverURL string
	var watch bool
	flag.StringVar(&configPath, "config", "", "path to config.yaml (default: ./config.yaml if present)")
	flag.StringVar(&mapPath, "map", "", "YAML map file (default: built-in arena)")
	flag.StringVar(&serverURL, "server", "", "multiplayer server websocket URL, e.g. ws://localhost:3000/ws")
	flag.BoolVar(&watch, "watch", false, "reload the map file when it changes")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.WithError(err).Warn("failed to load .env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}
	if serverURL == "" {
		serverURL = cfg.Client.ServerURL
	}

	arena := world.Default(cfg.World.TileSize)
	if mapPath != "" {
		if arena, err = world.Load(mapPath, cfg.World.TileSize); err != nil {
			logger.Log.WithError(err).Fatal("failed to load map")
		}
	}

	ebiten.SetWindowTitle(cfg.Client.Title)
	ebiten.SetWindowSize(cfg.Client.ScreenWidth, cfg.Client.ScreenHeight)
	ebiten.SetFullscreen(cfg.Client.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Client.VSync)

	g, err := NewGame(cfg, arena, gameOptions{
		MapPath:   mapPath,
		Watch:     watch || cfg.World.Watch,
		ServerURL: serverURL,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start game")
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.WithError(err).Error("game exited")
	}
	logger.Log.Info("Done.")
}
