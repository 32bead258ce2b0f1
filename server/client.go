package server

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"github.com/gogpu/sceneview"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 64
)

// client is one websocket subscriber of a scene.
type client struct {
	id    string
	scene string
	conn  *websocket.Conn
	send  chan []byte
}

func newClient(id, scene string, conn *websocket.Conn) *client {
	return &client{id: id, scene: scene, conn: conn, send: make(chan []byte, sendBuffer)}
}

// readPump consumes incoming frames until the peer goes away. Subscribers
// only listen; anything they send is dropped.
func (c *client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMsgSize)
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				sceneview.Logger().Debug("server: read error", "err", err, "client", c.id)
			}
			return
		}
	}
}

// writePump forwards queued messages and keeps the connection alive with
// pings. It returns when send is closed or ctx is done.
func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				sceneview.Logger().Debug("server: write error", "err", err, "client", c.id)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// queue hands data to the write pump. Slow subscribers lose messages
// rather than block the broadcaster.
func (c *client) queue(data []byte) {
	select {
	case c.send <- data:
	default:
		sceneview.Logger().Warn("server: send buffer full, dropping message", "client", c.id, "scene", c.scene)
	}
}
