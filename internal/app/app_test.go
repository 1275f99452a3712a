package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func setKeyEnv(t *testing.T) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	t.Setenv("JWT_PRIVATE_KEY", string(pem.EncodeToMemory(&pem.Block{
		Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key),
	})))
	t.Setenv("JWT_PUBLIC_KEY", string(pem.EncodeToMemory(&pem.Block{
		Type: "PUBLIC KEY", Bytes: pub,
	})))
}

func setupTestApp(t *testing.T, development bool) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Addr:        ":0",
		Development: development,
		Game: config.Game{
			Defaults: mines.GameParams{Width: 9, Height: 9, MineCount: 10},
			MaxCells: 1000,
		},
		Session:   config.Session{TTL: time.Hour, SweepInterval: time.Minute},
		RateLimit: config.RateLimit{Requests: 10, Window: time.Minute},
	}
	if !development {
		setKeyEnv(t)
	}

	a := New(logger, cfg)
	require.NoError(t, a.setup(context.Background()))
	return a.Handler()
}

type created struct {
	SessionId string `json:"session_id"`
	Token     string `json:"token"`
}

func newSession(t *testing.T, h http.Handler, query string) (created, []*http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game"+query, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var c created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c, rec.Result().Cookies()
}

func TestHealthAndMetrics(t *testing.T) {
	h := setupTestApp(t, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	newSession(t, h, "")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mines_games_started_total")
	assert.Contains(t, rec.Body.String(), "mines_sessions_active")
}

func TestBatchWithCookies(t *testing.T) {
	h := setupTestApp(t, false)
	session, cookies := newSession(t, h, "")

	r := httptest.NewRequest(http.MethodPost, "/v1/game/"+session.SessionId+"/batch",
		strings.NewReader("g\nm 0 0\nm 1 0\nm 1 0\n"))
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var state struct {
		Marks  int              `json:"marks"`
		Status mines.GameStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 1, state.Marks)
	assert.Equal(t, mines.Playing, state.Status)
}

func TestRevealAllRoute(t *testing.T) {
	cases := []struct {
		development bool
		want        int
	}{
		{false, http.StatusNotFound},
		{true, http.StatusOK},
	}
	for _, tc := range cases {
		h := setupTestApp(t, tc.development)
		session, _ := newSession(t, h, "")

		r := httptest.NewRequest(http.MethodPost, "/v1/game/"+session.SessionId+"/reveal-all", nil)
		r.Header.Set("Authorization", "Bearer "+session.Token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, tc.want, rec.Code, "development = %v", tc.development)
	}
}
