package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/server"
	"arenagame/world"
)

func main() {
	var configPath, mapPath string
	var port, healthPort int
	flag.StringVar(&configPath, "config", "", "path to config.yaml (default: ./config.yaml if present)")
	flag.StringVar(&mapPath, "map", "", "YAML map file (default: built-in arena)")
	flag.IntVar(&port, "port", 0, "websocket port (overrides config)")
	flag.IntVar(&healthPort, "health-port", 0, "health/metrics port (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.WithError(err).Warn("failed to load .env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if port != 0 {
		cfg.Server.Port = port
	}
	if healthPort != 0 {
		cfg.Server.HealthPort = healthPort
	}
	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}

	arena := world.Default(cfg.World.TileSize)
	if mapPath != "" {
		if arena, err = world.Load(mapPath, cfg.World.TileSize); err != nil {
			logger.Log.WithError(err).Fatal("failed to load map")
		}
	}
	w, h := arena.Bounds()
	logger.Log.WithField("map", arena.Name()).Infof("world is %.0fx%.0f", w, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, arena)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
	logger.Log.Info("Done.")
}
