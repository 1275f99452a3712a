package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger  logrus.FieldLogger
	cfg     *config.Config
	router  *http.ServeMux
	store   *session.Store
	cookies *config.Cookies
	jwt     *config.JWT
	ws      *config.WebSocket
	limiter *middleware.RateLimiter
}

func New(logger logrus.FieldLogger, cfg *config.Config) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		cfg:    cfg,
		router: router,
		store:  session.NewStore(logger.WithField("component", "sessions")),
		ws:     config.NewWebSocket(cfg.Development),
	}

	return app
}

// setup prepares everything Handler needs. It is split from Start so tests
// can build the handler without listening.
func (a *App) setup(ctx context.Context) error {
	jwt, err := config.NewJWT(a.cfg.Development)
	if err != nil {
		return fmt.Errorf("unable to load JWT keys: %w", err)
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt, a.cfg.Development)
	if err != nil {
		return err
	}
	a.cookies = cookies

	a.limiter = middleware.NewRateLimiter(
		ctx, a.logger.WithField("component", "ratelimit"), a.cfg.Redis, a.cfg.RateLimit,
	)

	a.loadRoutes()
	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.cookies),
		middleware.Logging(a.logger),
		middleware.Cors(a.cfg.Development, a.cfg.CorsOrigins...),
	)
}

// Start serves until ctx is done, then shuts the server down. Idle sessions
// are swept in the background for as long as the server runs.
func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer a.limiter.Close()

	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.store.Sweep(gCtx, a.cfg.Session.TTL, a.cfg.Session.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
