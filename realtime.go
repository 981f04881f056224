package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	streamInterval = 250 * time.Millisecond
	pingInterval   = 25 * time.Second
	writeWait      = 5 * time.Second
)

// The API only listens on a local interface; origins are checked by CORS on
// the REST routes.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFlow pushes the flow view to the client every 250ms until the client
// goes away or the server shuts down.
// GET /ws/flow (WebSocket upgrade).
func (h *Handler) streamFlow(c *gin.Context) {
	h.streams.Add(1)
	defer h.streams.Done()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// read loop ends on client close/error
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	tick := time.NewTicker(streamInterval)
	defer tick.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	if err := h.sendView(conn); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-h.done:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-tick.C:
			if err := h.sendView(conn); err != nil {
				return
			}
		}
	}
}

func (h *Handler) sendView(conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(h.app.View()); err != nil {
		h.log.Debug("Flow stream closed", zap.Error(err))
		return err
	}
	return nil
}
