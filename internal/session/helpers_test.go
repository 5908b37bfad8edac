package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/dietpanel/internal/storage"
	"github.com/iudanet/dietpanel/internal/storage/memory"
)

// fakeClock is a manually advanced clock shared by managers in a test
type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// stateRecorder collects states passed to the observer
type stateRecorder struct {
	states []State
	mu     sync.Mutex
}

func (r *stateRecorder) observe(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func newTestManager(t *testing.T, store storage.SessionStorage, clock *fakeClock, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(context.Background(), store, opts...)
}

func newHub(t *testing.T) *memory.Hub {
	t.Helper()
	hub := memory.New()
	t.Cleanup(func() {
		require.NoError(t, hub.Close())
	})
	return hub
}

func mustGet(t *testing.T, store storage.SessionStorage, key string) string {
	t.Helper()
	v, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}
