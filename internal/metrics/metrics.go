package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_games_started_total",
			Help: "Boards dealt, including resets",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_games_finished_total",
			Help: "Games that reached a terminal status",
		},
		[]string{"status"},
	)
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_moves_total",
			Help: "Commands applied to game sessions",
		},
		[]string{"op"},
	)
	CellsRevealed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_cells_changed_total",
			Help: "Cells revealed or (un)marked by moves",
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mines_sessions_active",
			Help: "Game sessions held in memory",
		},
	)
	SessionsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_sessions_evicted_total",
			Help: "Idle sessions dropped by the sweeper",
		},
	)
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		GamesStarted,
		GamesFinished,
		Moves,
		CellsRevealed,
		ActiveSessions,
		SessionsEvicted,
		RLRequests,
		RLBlocked,
	)
}
