package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/dietpanel/internal/storage"
	"github.com/iudanet/dietpanel/internal/validation"
)

// DefaultTickInterval is the period of the expiry check
const DefaultTickInterval = time.Second

// State is the in-memory view of the session, derived from a Snapshot
type State struct {
	Snapshot         Snapshot
	Authenticated    bool
	RemainingSeconds int
}

// Manager owns the session of one execution context.
// The durable storage is the source of truth; State is a cache of it.
type Manager struct {
	store        storage.SessionStorage
	logger       *slog.Logger
	now          func() time.Time
	observer     func(State)
	wake         chan struct{}
	state        State
	tickInterval time.Duration
	mu           sync.Mutex
}

// Option configures Manager
type Option func(*Manager)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTickInterval overrides DefaultTickInterval
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithObserver registers fn to receive a copy of the state after each change.
// fn is called without the manager lock held.
func WithObserver(fn func(State)) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// New creates a Manager and loads the initial state from store, so a session
// survives a restart until it expires. Read failures yield the logged-out state.
func New(ctx context.Context, store storage.SessionStorage, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		logger:       slog.Default(),
		now:          time.Now,
		wake:         make(chan struct{}, 1),
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	snapshot := m.load(ctx)
	m.state = m.derive(snapshot)

	m.logger.Debug("session initialized",
		"authenticated", m.state.Authenticated,
		"remaining_seconds", m.state.RemainingSeconds,
	)

	return m
}

// State returns a copy of the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Authenticated reports whether the session is currently valid
func (m *Manager) Authenticated() bool {
	return m.State().Authenticated
}

// Login starts a session for identifier. Any non-blank pair is accepted;
// a blank identifier or secret is silently ignored.
func (m *Manager) Login(ctx context.Context, identifier, secret string) error {
	if validation.IsBlank(identifier) || validation.IsBlank(secret) {
		m.logger.Debug("login ignored: blank credentials")
		return nil
	}

	m.mu.Lock()
	now := m.now()
	next := Snapshot{
		Token:     PlaceholderToken,
		User:      identifier,
		ExpiresAt: now.Add(DefaultDuration).UnixMilli(),
	}

	if err := writeSnapshot(ctx, m.store, next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("login failed: %w", err)
	}

	state := m.setLocked(State{
		Snapshot:         next,
		Authenticated:    true,
		RemainingSeconds: next.Remaining(now),
	})
	m.mu.Unlock()

	m.logger.Info("logged in", "user", identifier, "expires_at", time.UnixMilli(next.ExpiresAt))
	m.notify(state)
	return nil
}

// Logout clears the stored snapshot and resets the state. It is idempotent.
// The state is reset even if the storage could not be cleared.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	err := m.logoutLocked(ctx)
	state := m.state
	m.mu.Unlock()

	m.notify(state)
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Extend moves the expiry to now + minutes. Non-positive minutes mean
// DefaultExtendMinutes, larger than MaxExtendMinutes are capped.
// Does nothing when not authenticated.
func (m *Manager) Extend(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		minutes = DefaultExtendMinutes
	}
	minutes = min(minutes, MaxExtendMinutes)

	m.mu.Lock()
	if !m.state.Authenticated {
		m.mu.Unlock()
		return nil
	}

	now := m.now()
	next := Snapshot{
		Token:     m.state.Snapshot.Token,
		User:      m.state.Snapshot.User,
		ExpiresAt: now.Add(time.Duration(minutes) * time.Minute).UnixMilli(),
	}
	if next.Token == "" {
		next.Token = PlaceholderToken
	}
	if next.User == "" {
		next.User = PlaceholderUser
	}

	if err := writeSnapshot(ctx, m.store, next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("extend failed: %w", err)
	}

	state := m.setLocked(State{
		Snapshot:         next,
		Authenticated:    next.Valid(now),
		RemainingSeconds: next.Remaining(now),
	})
	m.mu.Unlock()

	m.logger.Info("session extended", "minutes", minutes)
	m.notify(state)
	return nil
}

// Tick performs the periodic expiry check against the stored snapshot
// (not the cached one). An absent or past expiry logs the session out.
// Does nothing when not authenticated.
func (m *Manager) Tick(ctx context.Context) {
	m.mu.Lock()
	if !m.state.Authenticated {
		m.mu.Unlock()
		return
	}

	now := m.now()
	snapshot := m.load(ctx)

	if snapshot.ExpiresAt == 0 || now.UnixMilli() >= snapshot.ExpiresAt {
		if err := m.logoutLocked(ctx); err != nil {
			m.logger.Warn("failed to clear expired session", "error", err)
		}
		state := m.state
		m.mu.Unlock()

		m.logger.Info("session expired")
		m.notify(state)
		return
	}

	state := m.setLocked(State{
		Snapshot:         snapshot,
		Authenticated:    true,
		RemainingSeconds: snapshot.Remaining(now),
	})
	m.mu.Unlock()

	m.notify(state)
}

// HandleChange reconciles the state after another context modified key.
// Keys outside the session snapshot are ignored.
func (m *Manager) HandleChange(ctx context.Context, key string) {
	if !IsSessionKey(key) {
		return
	}
	m.reconcile(ctx, key)
}

// reconcile replaces the state with the one derived from the stored snapshot
func (m *Manager) reconcile(ctx context.Context, key string) {
	m.mu.Lock()
	snapshot := m.load(ctx)
	was := m.state.Authenticated
	state := m.setLocked(m.derive(snapshot))
	m.mu.Unlock()

	if was != state.Authenticated {
		m.logger.Info("session changed by another context",
			"key", key,
			"authenticated", state.Authenticated,
		)
	}
	m.notify(state)
}

// load reads the stored snapshot, failing open to the logged-out snapshot
func (m *Manager) load(ctx context.Context) Snapshot {
	snapshot, err := readSnapshot(ctx, m.store)
	if err != nil {
		m.logger.Warn("failed to read session, treating as logged out", "error", err)
		return Snapshot{}
	}
	return snapshot
}

func (m *Manager) derive(s Snapshot) State {
	now := m.now()
	return State{
		Snapshot:         s,
		Authenticated:    s.Valid(now),
		RemainingSeconds: s.Remaining(now),
	}
}

func (m *Manager) logoutLocked(ctx context.Context) error {
	err := clearSnapshot(ctx, m.store)
	m.setLocked(State{})
	return err
}

// setLocked replaces the state and wakes Run if authentication flipped.
// Caller must hold m.mu.
func (m *Manager) setLocked(next State) State {
	flipped := m.state.Authenticated != next.Authenticated
	m.state = next
	if flipped {
		select {
		case m.wake <- struct{}{}:
		default:
		}
	}
	return next
}

func (m *Manager) notify(state State) {
	if m.observer != nil {
		m.observer(state)
	}
}
