package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrWatchClosed is returned by Run when the storage stops delivering changes
var ErrWatchClosed = errors.New("session storage watch closed")

// Run is the event loop of the manager. Expiry ticks and changes made by
// other contexts are handled one at a time here. The ticker runs only while
// authenticated and is stopped on logout and when Run returns.
// Run returns nil when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	changes, err := m.store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch session storage: %w", err)
	}

	// Изменения, сделанные до подписки, в канал не попадут
	m.reconcile(ctx, "")

	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
			m.logger.Debug("expiry check stopped")
		}
	}
	defer stopTicker()

	for {
		if m.Authenticated() {
			if ticker == nil {
				ticker = time.NewTicker(m.tickInterval)
				tickC = ticker.C
				m.logger.Debug("expiry check started", "interval", m.tickInterval)
			}
		} else {
			stopTicker()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-m.wake:
		case <-tickC:
			m.Tick(ctx)
		case change, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrWatchClosed
			}
			m.HandleChange(ctx, change.Key)
		}
	}
}
