package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"arenagame/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// session is one websocket connection. id and closed belong to the loop
// goroutine; the pumps only touch conn and the channels.
type session struct {
	id     string
	remote string
	conn   *websocket.Conn
	send   chan []byte
	closed bool
}

type inbound struct {
	sess *session
	data []byte
}

// readPump forwards every frame to the loop until the connection fails
func (srv *Server) readPump(s *session) {
	defer func() {
		select {
		case srv.leave <- s:
		case <-srv.done:
		}
		if err := s.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket")
		}
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).WithField("remote", s.remote).Error("websocket read failed")
			}
			return
		}
		select {
		case srv.inbox <- inbound{sess: s, data: data}:
		case <-srv.done:
			return
		}
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
// A closed queue ends the connection with a close frame.
func (srv *Server) writePump(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := s.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket")
		}
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
				if err := s.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Log.WithError(err).WithFields(logrus.Fields{"remote": s.remote}).Debug("write failed")
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
