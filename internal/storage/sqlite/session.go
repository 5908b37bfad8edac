package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/dietpanel/internal/storage"
)

// Compile-time check that Storage implements storage.SessionStorage
var _ storage.SessionStorage = (*Storage)(nil)

func (s *Storage) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if s.closed() {
		return "", storage.ErrStorageClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Set stores value under key and records a change if the value differs
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if s.closed() {
		return storage.ErrStorageClosed
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var old string
		err := tx.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key = ?`, key).Scan(&old)
		switch {
		case err == nil && old == value:
			return nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		now := time.Now()
		query := `
			INSERT INTO session_kv (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query, key, value, now.UnixMilli()); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return s.recordChange(ctx, tx, key, now)
	})
}

// Remove deletes key and records a change if it existed
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.closed() {
		return storage.ErrStorageClosed
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return nil
		}

		return s.recordChange(ctx, tx, key, time.Now())
	})
}

// Watch polls the change log and reports changes made by other origins.
// Only changes recorded after the call are reported.
func (s *Storage) Watch(ctx context.Context) (<-chan storage.Change, error) {
	if s.closed() {
		return nil, storage.ErrStorageClosed
	}

	var lastID int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM session_changes`).Scan(&lastID); err != nil {
		return nil, fmt.Errorf("failed to read change log position: %w", err)
	}

	ch := make(chan storage.Change)
	go s.poll(ctx, lastID, ch)

	return ch, nil
}

func (s *Storage) poll(ctx context.Context, lastID int64, ch chan<- storage.Change) {
	defer close(ch)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
		}

		changes, newLastID, err := s.changesAfter(ctx, lastID)
		if err != nil {
			if ctx.Err() != nil || s.closed() {
				return
			}
			s.logger.Warn("failed to poll session changes", "error", err)
			continue
		}
		lastID = newLastID

		for _, c := range changes {
			select {
			case ch <- c:
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}
}

// changesAfter returns foreign changes with id > lastID and the new position
func (s *Storage) changesAfter(ctx context.Context, lastID int64) ([]storage.Change, int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, origin FROM session_changes WHERE id > ? ORDER BY id`, lastID)
	if err != nil {
		return nil, lastID, fmt.Errorf("failed to query changes: %w", err)
	}
	defer rows.Close()

	var changes []storage.Change
	for rows.Next() {
		var (
			id     int64
			change storage.Change
		)
		if err := rows.Scan(&id, &change.Key, &change.Origin); err != nil {
			return nil, lastID, fmt.Errorf("failed to scan change: %w", err)
		}
		lastID = id
		if change.Origin != s.origin {
			changes = append(changes, change)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, lastID, fmt.Errorf("failed to iterate changes: %w", err)
	}

	return changes, lastID, nil
}

func (s *Storage) recordChange(ctx context.Context, tx *sql.Tx, key string, now time.Time) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session_changes (key, origin, created_at) VALUES (?, ?, ?)`,
		key, s.origin, now.UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to record change: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM session_changes WHERE created_at < ?`,
		now.Add(-changeRetention).UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to prune change log: %w", err)
	}

	return nil
}

func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
