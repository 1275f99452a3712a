package handlers

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const maxBatchBytes = 64 << 10

var (
	errForeignSession = errors.New("session belongs to another client")
	errTooManyCells   = errors.New("board is too large")
)

type GameHandler struct {
	logger      logrus.FieldLogger
	store       *session.Store
	cookies     *config.Cookies
	jwt         *config.JWT
	ws          *config.WebSocket
	game        config.Game
	development bool

	// newRand seeds each dealt game; rand.Rand is not safe to share
	// between sessions.
	newRand func() *rand.Rand
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store *session.Store,
	cookies *config.Cookies,
	jwt *config.JWT,
	ws *config.WebSocket,
	game config.Game,
	development bool,
) *GameHandler {
	handler := &GameHandler{
		logger:      logger,
		store:       store,
		cookies:     cookies,
		jwt:         jwt,
		ws:          ws,
		game:        game,
		development: development,
		newRand:     mines.NewRand,
	}

	return handler
}

func sessionPath(id uuid.UUID) string {
	return "/v1/game/" + id.String()
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.game.Defaults)
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if g.game.MaxCells > 0 && (params.Width > g.game.MaxCells ||
		params.Height > g.game.MaxCells ||
		params.Width*params.Height > g.game.MaxCells) {
		sendError(w, g.logger, http.StatusBadRequest,
			fmt.Errorf("%w: at most %d cells", errTooManyCells, g.game.MaxCells))
		return
	}

	game, err := mines.NewGame(params, g.newRand())
	var configErr *mines.ConfigError
	if errors.As(err, &configErr) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to deal a new game")
		return
	}

	sess := g.store.Create(game)
	metrics.GamesStarted.Inc()

	token, err := g.jwt.SignSession(sess.ID.String())
	if err != nil {
		g.store.Delete(sess.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to sign session token")
		return
	}
	if err := g.cookies.Refresh(w, token, sessionPath(sess.ID)); err != nil {
		g.store.Delete(sess.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to set session cookies")
		return
	}

	g.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"seed":       params.Seed(),
	}).Debug("created session")

	var dto *SessionDTO
	sess.Do(func(game *mines.Game) error {
		dto = NewSessionDTO(sess, game.Board())
		return nil
	})
	dto.Token = token
	sendJSONOrLog(w, g.logger, dto)
}

// lookup resolves the session named in the path. When owned is set the
// request must also carry that session's claims.
func (g *GameHandler) lookup(w http.ResponseWriter, r *http.Request, owned bool) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid session id: %w", err))
		return nil, false
	}

	sess, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to fetch session")
		return nil, false
	}

	if owned {
		claims, ok := middleware.SessionClaims(r.Context())
		if !ok || claims.SessionId != id.String() {
			sendError(w, g.logger, http.StatusForbidden, errForeignSession)
			return nil, false
		}
	}

	return sess, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.lookup(w, r, false)
	if !ok {
		return
	}
	g.run(w, sess, nil)
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Reveal)
}

func (g *GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Mark)
}

func (g *GameHandler) move(w http.ResponseWriter, r *http.Request, op command.Op) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	sess, ok := g.lookup(w, r, true)
	if !ok {
		return
	}
	g.run(w, sess, []command.Command{{Op: op, X: pos.X, Y: pos.Y}})
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.lookup(w, r, true)
	if !ok {
		return
	}
	g.run(w, sess, []command.Command{{Op: command.Reset}})
}

func (g *GameHandler) RevealAll(w http.ResponseWriter, r *http.Request) {
	if !g.development {
		http.NotFound(w, r)
		return
	}
	sess, ok := g.lookup(w, r, true)
	if !ok {
		return
	}
	g.run(w, sess, []command.Command{{Op: command.RevealAll}})
}

func (g *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.lookup(w, r, true)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	cmds, err := command.ParseBatch(string(body))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	g.run(w, sess, cmds)
}

func (g *GameHandler) run(w http.ResponseWriter, sess *session.Session, cmds []command.Command) {
	dto, err := g.execute(sess, cmds)
	if errors.Is(err, command.ErrDebugDisabled) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).WithField("session_id", sess.ID).Error("unable to apply commands")
		return
	}
	sendJSONOrLog(w, g.logger, dto)
}

// execute applies cmds to the session's game and snapshots the result in
// the same critical section.
func (g *GameHandler) execute(sess *session.Session, cmds []command.Command) (*SessionDTO, error) {
	var dto *SessionDTO
	err := sess.Do(func(game *mines.Game) error {
		before := game.Board().Status()
		res, err := command.Execute(game, cmds, command.Options{
			AllowDebug: g.development,
		})
		observe(cmds[:res.Executed], before, res)
		if err != nil {
			return err
		}
		dto = NewSessionDTO(sess, game.Board())
		return nil
	})
	return dto, err
}

func observe(executed []command.Command, before mines.GameStatus, res command.Result) {
	for _, c := range executed {
		metrics.Moves.WithLabelValues(c.Op.String()).Inc()
		if c.Op == command.Reset {
			metrics.GamesStarted.Inc()
		}
	}
	metrics.CellsRevealed.Add(float64(res.Changed))
	if !before.Over() && res.Status.Over() {
		metrics.GamesFinished.WithLabelValues(res.Status.String()).Inc()
	}
}
