// Package netclient is the game client side of the multiplayer protocol: a
// websocket connection that decodes server frames on its own goroutine and
// a Mirror of the authoritative state built from them.
package netclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"arenagame/logger"
	"arenagame/protocol"
)

const (
	inboxSize    = 256
	writeTimeout = 2 * time.Second
)

var ErrClosed = errors.New("netclient: connection closed")

type Client struct {
	conn     *websocket.Conn
	incoming chan any
	done     chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
	seq       int64

	errMu sync.Mutex
	err   error
}

// Dial connects to a game server websocket endpoint such as ws://host:3000/
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:     conn,
		incoming: make(chan any, inboxSize),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	logger.Log.WithField("url", url).Info("connected to server")
	return c, nil
}

func (c *Client) readLoop() {
	defer c.shutdown(nil)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.shutdown(err)
			}
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			logger.Log.WithError(err).Warn("dropping server message")
			continue
		}
		select {
		case c.incoming <- msg:
		case <-c.done:
			return
		default:
			// the next state frame supersedes this one
			logger.Log.WithField("type", protocol.TypeOf(msg)).Debug("inbox full, message dropped")
		}
	}
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		if err != nil {
			c.errMu.Lock()
			c.err = err
			c.errMu.Unlock()
			logger.Log.WithError(err).Warn("server connection lost")
		}
		close(c.done)
		_ = c.conn.Close()
	})
}

// Poll drains every message received since the last call without blocking
func (c *Client) Poll() []any {
	var out []any
	for {
		select {
		case msg := <-c.incoming:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func (c *Client) Send(msg any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.shutdown(err)
		return err
	}
	return nil
}

// SendUpdate reports the local player with the next input sequence number
func (c *Client) SendUpdate(info protocol.PlayerInfo) error {
	c.writeMu.Lock()
	c.seq++
	seq := c.seq
	c.writeMu.Unlock()
	return c.Send(protocol.NewUpdate(info.X, info.Y, info.Rotation, info.Health, info.Ammo, info.Score, seq))
}

// Done is closed once the connection is gone
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Connected() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Err is the error that ended the connection, nil after a clean close
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close sends a close frame and tears the connection down
func (c *Client) Close() error {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	c.writeMu.Unlock()
	c.shutdown(nil)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		logger.Log.WithFields(logrus.Fields{"error": err}).Debug("close frame not sent")
	}
	return nil
}
