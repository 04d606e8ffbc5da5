package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"

	"arenagame/logger"
)

const shutdownTimeout = 5 * time.Second

type healthResponse struct {
	Status      string  `json:"status"`
	Players     int     `json:"players"`
	Projectiles int     `json:"projectiles"`
	Uptime      float64 `json:"uptime"`
}

type memoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
}

type metricsResponse struct {
	Players     int         `json:"players"`
	Projectiles int         `json:"projectiles"`
	Uptime      float64     `json:"uptime"`
	Memory      memoryStats `json:"memory"`
	Goroutines  int         `json:"goroutines"`
}

// GameRouter serves the websocket endpoint on / and /ws
func (srv *Server) GameRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", srv.ServeWS)
	r.HandleFunc("/ws", srv.ServeWS)
	return r
}

// HealthRouter serves /health and /metrics; everything else is a 404
func (srv *Server) HealthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", srv.handleMetrics).Methods(http.MethodGet)
	return r
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:      "healthy",
		Players:     srv.PlayerCount(),
		Projectiles: srv.ProjectileCount(),
		Uptime:      srv.Uptime().Seconds(),
	})
}

func (srv *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	writeJSON(w, metricsResponse{
		Players:     srv.PlayerCount(),
		Projectiles: srv.ProjectileCount(),
		Uptime:      srv.Uptime().Seconds(),
		Memory: memoryStats{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapAlloc:  ms.HeapAlloc,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("write json response")
	}
}

// ListenAndServe runs the game loop, the websocket listener and the health
// listener until ctx is cancelled or a listener fails
func (srv *Server) ListenAndServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := srv.cfg.Server
	game := &http.Server{Addr: fmt.Sprintf("%s:%d", sc.Host, sc.Port), Handler: srv.GameRouter()}
	health := &http.Server{Addr: fmt.Sprintf("%s:%d", sc.Host, sc.HealthPort), Handler: srv.HealthRouter()}

	errc := make(chan error, 2)
	for _, hs := range []*http.Server{game, health} {
		go func(hs *http.Server) {
			logger.Log.WithField("addr", hs.Addr).Info("listening")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("server: listen %s: %w", hs.Addr, err)
				cancel()
			}
		}(hs)
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = srv.Run(ctx)
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	for _, hs := range []*http.Server{game, health} {
		if err := hs.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).WithField("addr", hs.Addr).Warn("shutdown")
		}
	}
	<-loopDone

	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}
