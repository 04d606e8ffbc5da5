package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/texture"
)

func main() {
	var configPath, addr string
	var seed int64
	flag.StringVar(&configPath, "config", "", "path to config.yaml (default: ./config.yaml if present)")
	flag.StringVar(&addr, "addr", "", "listen address (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "noise seed (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.WithError(err).Warn("failed to load .env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if addr == "" {
		addr = cfg.Textures.ListenAddr
	}
	if seed == 0 {
		seed = cfg.Textures.Seed
	}

	handler := texture.NewHandler(texture.NewProcedural(seed))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("texture service shutdown")
		}
	}()

	logger.Log.WithField("addr", addr).Info("texture service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("texture service stopped")
	}
	s := handler.Stats()
	logger.Log.WithField("generated", s.Generated).WithField("cached", s.Cached).Info("Done.")
}
