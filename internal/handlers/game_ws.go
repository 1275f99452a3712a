package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const writeWait = 10 * time.Second

// ConnectWS upgrades to a websocket on which every text frame is a command
// batch. Each frame is answered with the session snapshot, or with an
// {"error": ...} object when the batch is rejected.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.lookup(w, r, true)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer c.Close()

	logger := g.logger.WithField("session_id", sess.ID)
	logger.Debug("websocket connected")

	c.SetReadLimit(g.ws.ReadLimit)
	c.SetReadDeadline(time.Now().Add(g.ws.PongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(g.ws.PongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go g.ping(c, done, logger)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			c.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text frames only"),
				time.Now().Add(writeWait))
			return
		}

		text := strings.TrimSpace(string(message))
		logger.Debug("\t> ", text)

		reply, err := g.frame(sess, text)
		if err != nil {
			logger.WithError(err).Error("unable to apply commands")
			return
		}

		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteJSON(reply); err != nil {
			logger.WithError(err).Warn("websocket write failed")
			return
		}
	}
}

// frame answers one batch. Only unexpected failures are returned as errors,
// rejected input becomes part of the reply.
func (g *GameHandler) frame(sess *session.Session, text string) (any, error) {
	cmds, err := command.ParseBatch(text)
	if err != nil {
		return wrapError(err), nil
	}
	dto, err := g.execute(sess, cmds)
	if errors.Is(err, command.ErrDebugDisabled) {
		return wrapError(err), nil
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (g *GameHandler) ping(c *websocket.Conn, done <-chan struct{}, logger logrus.FieldLogger) {
	ticker := time.NewTicker(g.ws.PongWait * 9 / 10)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.WithError(err).Debug("websocket ping failed")
				return
			}
		}
	}
}
