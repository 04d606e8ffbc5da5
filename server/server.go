// Package server runs the authoritative multiplayer simulation.
//
// A single loop goroutine owns the GameState and the Hub. Connection
// goroutines only talk to it over channels, so every message handler and
// every tick runs to completion before the next one starts.
package server

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"arenagame/config"
	"arenagame/logger"
	"arenagame/protocol"
	"arenagame/world"
)

var ErrServerFull = errors.New("server: full")

type Server struct {
	cfg     *config.Config
	state   *GameState
	hub     *Hub
	started time.Time
	now     func() time.Time

	join  chan *session
	leave chan *session
	inbox chan inbound
	done  chan struct{}

	players     atomic.Int64
	projectiles atomic.Int64

	upgrader websocket.Upgrader
}

func New(cfg *config.Config, w *world.Map) *Server {
	return &Server{
		cfg:     cfg,
		state:   NewGameState(cfg, w, rand.New(rand.NewSource(time.Now().UnixNano()))),
		hub:     NewHub(),
		started: time.Now(),
		now:     time.Now,
		join:    make(chan *session),
		leave:   make(chan *session),
		inbox:   make(chan inbound, 256),
		done:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run owns the game state until ctx is cancelled. Every session is closed
// on the way out.
func (srv *Server) Run(ctx context.Context) error {
	interval := srv.cfg.Server.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(srv.done)

	logger.Log.WithFields(logrus.Fields{
		"tick_rate":   srv.cfg.Server.TickRate,
		"max_players": srv.cfg.Server.MaxPlayers,
	}).Info("game loop started")

	last := srv.now()
	for {
		select {
		case <-ctx.Done():
			for _, id := range sortedKeys(srv.hub.sessions) {
				srv.hub.Unregister(id)
			}
			logger.Log.Info("game loop stopped")
			return nil
		case s := <-srv.join:
			srv.handleJoin(s)
		case s := <-srv.leave:
			srv.handleLeave(s)
		case in := <-srv.inbox:
			srv.handleMessage(in.sess, in.data)
		case <-ticker.C:
			now := srv.now()
			srv.tick(now.Sub(last).Seconds(), now)
			last = now
		}
		srv.players.Store(int64(srv.state.PlayerCount()))
		srv.projectiles.Store(int64(srv.state.ProjectileCount()))
	}
}

func (srv *Server) handleJoin(s *session) {
	if srv.state.PlayerCount() >= srv.cfg.Server.MaxPlayers {
		logger.Log.WithField("remote", s.remote).Warn("rejecting connection, server full")
		srv.sendDirect(s, protocol.NewError("Server full"))
		s.close()
		return
	}

	s.id = uuid.NewString()
	ps := srv.state.AddPlayer(s.id, srv.now())
	srv.hub.Register(s)
	logger.Log.WithFields(logrus.Fields{
		"player_id": s.id,
		"remote":    s.remote,
		"x":         ps.Position.X,
		"y":         ps.Position.Y,
	}).Info("player joined")

	srv.sendDirect(s, protocol.NewInit(s.id, ps.Info()))
	srv.broadcastState()
}

func (srv *Server) handleLeave(s *session) {
	if s.id == "" || srv.hub.sessions[s.id] != s {
		return
	}
	srv.dropPlayer(s.id, "disconnected")
	srv.broadcastState()
}

func (srv *Server) dropPlayer(id, reason string) {
	srv.state.RemovePlayer(id)
	srv.hub.Unregister(id)
	logger.Log.WithFields(logrus.Fields{"player_id": id, "reason": reason}).Info("player left")
}

func (srv *Server) handleMessage(s *session, data []byte) {
	if s.id == "" || srv.hub.sessions[s.id] != s {
		return
	}
	log := logger.Log.WithField("player_id", s.id)

	msg, err := protocol.Decode(data)
	if errors.Is(err, protocol.ErrUnknownType) {
		log.WithField("type", msg.(protocol.Envelope).Type).Warn("unknown message type")
		return
	}
	if err != nil {
		log.WithError(err).Error("message parse error")
		return
	}

	now := srv.now()
	switch m := msg.(type) {
	case *protocol.Update:
		if err := srv.state.ApplyUpdate(s.id, m, now); err != nil {
			log.WithError(err).Warn("update rejected")
		}
	case *protocol.Shoot:
		if p, ok := srv.state.Shoot(s.id, m); ok {
			log.WithField("projectile_id", p.ID).Debug("shot fired")
		}
	case *protocol.Respawn:
		if srv.state.Respawn(s.id) {
			log.Info("player respawned")
		}
	case *protocol.Chat:
		srv.broadcast(protocol.NewChat(s.id, m.Message))
	default:
		log.WithField("type", protocol.TypeOf(msg)).Warn("unexpected message from client")
	}
}

func (srv *Server) tick(dt float64, now time.Time) {
	for _, k := range srv.state.Step(dt) {
		logger.Log.WithFields(logrus.Fields{
			"player_id":  k.VictimID,
			"shooter_id": k.ShooterID,
		}).Info("player killed")
	}
	for _, id := range srv.state.Expired(now) {
		srv.dropPlayer(id, "timeout")
	}
	srv.broadcastState()
}

func (srv *Server) broadcastState() {
	srv.broadcast(srv.state.Snapshot(srv.now()))
}

func (srv *Server) broadcast(msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		logger.Log.WithError(err).Error("broadcast")
		return
	}
	srv.hub.Broadcast(data)
}

func (srv *Server) sendDirect(s *session, msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		logger.Log.WithError(err).Error("send")
		return
	}
	s.enqueue(data)
}

// ServeWS upgrades the request and hands the connection to the loop
func (srv *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}

	s := &session{
		remote: r.RemoteAddr,
		conn:   conn,
		send:   make(chan []byte, srv.cfg.Server.SendBuffer),
	}
	go srv.writePump(s)

	select {
	case srv.join <- s:
	case <-srv.done:
		s.close()
		return
	}
	go srv.readPump(s)
}

// PlayerCount is safe to call from any goroutine
func (srv *Server) PlayerCount() int {
	return int(srv.players.Load())
}

func (srv *Server) ProjectileCount() int {
	return int(srv.projectiles.Load())
}

func (srv *Server) Uptime() time.Duration {
	return time.Since(srv.started)
}
