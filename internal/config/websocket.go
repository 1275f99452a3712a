package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	ReadLimit int64
	PongWait  time.Duration
}

func NewWebSocket(development bool) *WebSocket {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if development {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: 64 << 10,
		PongWait:  time.Minute,
	}

	return ws
}
