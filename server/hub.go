package server

import (
	"arenagame/logger"
)

// Hub fans messages out to connected sessions. It is owned by the server
// loop goroutine and needs no locking.
type Hub struct {
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

func (h *Hub) Register(s *session) {
	h.sessions[s.id] = s
}

// Unregister removes the session and closes its send queue, which makes
// the write pump close the connection
func (h *Hub) Unregister(id string) {
	if s, ok := h.sessions[id]; ok {
		delete(h.sessions, id)
		s.close()
	}
}

func (h *Hub) Len() int {
	return len(h.sessions)
}

// Broadcast queues msg for every session. A full queue drops the message
// for that session only.
func (h *Hub) Broadcast(msg []byte) {
	for _, s := range h.sessions {
		s.enqueue(msg)
	}
}

func (s *session) enqueue(msg []byte) {
	if s.closed {
		return
	}
	select {
	case s.send <- msg:
	default:
		logger.Log.WithField("player_id", s.id).Warn("send queue full, dropping message")
	}
}

func (s *session) close() {
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}
