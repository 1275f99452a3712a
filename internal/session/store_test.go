package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewStore(log)
}

func newGame(t *testing.T) *mines.Game {
	t.Helper()
	g, err := mines.NewGame(mines.GameParams{Width: 9, Height: 9, MineCount: 10}, nil)
	require.NoError(t, err)
	return g
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateGetDelete(t *testing.T) {
	s := setupTestStore(t)
	g := newGame(t)

	sess := s.Create(g)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	err = got.Do(func(have *mines.Game) error {
		assert.Same(t, g, have)
		return nil
	})
	require.NoError(t, err)

	s.Delete(sess.ID)
	s.Delete(sess.ID)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale := s.Create(newGame(t))
	fresh := s.Create(newGame(t))
	stale.touch(now.Add(-2 * time.Hour))
	fresh.touch(now.Add(-time.Minute))

	assert.Equal(t, 1, s.Evict(time.Hour))

	_, err := s.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSweepStopsWithContext(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Sweep(ctx, time.Hour, time.Millisecond)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop")
	}
}

func TestSessionDoSerializesMoves(t *testing.T) {
	s := setupTestStore(t)
	sess := s.Create(newGame(t))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Do(func(g *mines.Game) error {
				g.Mark(i%9, i/9)
				return nil
			})
		}()
	}
	wg.Wait()

	sess.Do(func(g *mines.Game) error {
		assert.LessOrEqual(t, g.Board().Marks(), 50)
		return nil
	})
}
