package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger.WithField("component", "game"),
		a.store, a.cookies, a.jwt, a.ws, a.cfg.Game, a.cfg.Development,
	)

	limited := func(pattern string, h http.HandlerFunc) {
		a.router.Handle(pattern, a.limiter.Limit(pattern)(h))
	}

	limited("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	limited("POST /v1/game/{id}/reveal", game.Reveal)
	limited("POST /v1/game/{id}/mark", game.Mark)
	limited("POST /v1/game/{id}/reset", game.Reset)
	limited("POST /v1/game/{id}/batch", game.Batch)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)
	if a.cfg.Development {
		a.router.HandleFunc("POST /v1/game/{id}/reveal-all", game.RevealAll)
	}

	a.router.Handle("GET /metrics", promhttp.Handler())
	a.router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
}
