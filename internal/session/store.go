package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Session is one game hosted by the server. All access to the game goes
// through [Session.Do], which serializes moves.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu       sync.Mutex
	game     *mines.Game
	lastSeen atomic.Int64
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *mines.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(time.Now())
	return fn(s.game)
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewStore(log logrus.FieldLogger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		log:      log,
		now:      time.Now,
	}
}

func (s *Store) Create(g *mines.Game) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		StartedAt: now,
		game:      g,
	}
	sess.touch(now)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return sess
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Deletes a session without checking if it existed.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions that have not been used for longer than ttl and
// returns how many were dropped.
func (s *Store) Evict(ttl time.Duration) int {
	deadline := s.now().Add(-ttl)

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	metrics.SessionsEvicted.Add(float64(evicted))
	return evicted
}

// Sweep evicts idle sessions every interval until ctx is done.
func (s *Store) Sweep(ctx context.Context, ttl, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(ttl); n > 0 {
				s.log.WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": s.Len(),
				}).Info("evicted idle sessions")
			}
		}
	}
}
