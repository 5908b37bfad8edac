// Package session implements the timed mock login session: a snapshot of
// token, user and expiry kept in durable storage, with a periodic expiry
// check and reconciliation of changes made by other execution contexts.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/dietpanel/internal/storage"
)

// Storage keys of the snapshot fields
const (
	TokenKey     = "dp_auth_token"
	UserKey      = "dp_auth_user"
	ExpiresAtKey = "dp_auth_expires_at"
)

const (
	// DefaultDuration is the lifetime of a fresh login
	DefaultDuration = 30 * time.Minute

	// DefaultExtendMinutes is used by Extend when no positive value is given
	DefaultExtendMinutes = 15

	// MaxExtendMinutes caps a single extension (one year)
	MaxExtendMinutes = 365 * 24 * 60

	// PlaceholderToken is the credential stored on login; authentication is a mock
	PlaceholderToken = "demo-token"

	// PlaceholderUser replaces a missing user on extension
	PlaceholderUser = "user"
)

// Snapshot is the persisted authentication record, treated as one unit.
// Empty Token or User means absent; ExpiresAt is epoch milliseconds, 0 if absent.
type Snapshot struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	ExpiresAt int64  `json:"expires_at"`
}

// Valid reports whether the token is present and not expired at now
func (s Snapshot) Valid(now time.Time) bool {
	return s.Token != "" && s.ExpiresAt > now.UnixMilli()
}

// Remaining returns whole seconds left until expiry, never negative
func (s Snapshot) Remaining(now time.Time) int {
	diff := s.ExpiresAt - now.UnixMilli()
	if diff <= 0 {
		return 0
	}
	return int(diff / 1000)
}

// IsSessionKey reports whether key holds one of the snapshot fields
func IsSessionKey(key string) bool {
	switch key {
	case TokenKey, UserKey, ExpiresAtKey:
		return true
	default:
		return false
	}
}

// readSnapshot reads all three entries. Missing entries yield zero values and
// an unparseable expiry reads as 0. The first read failure is returned together
// with the zero snapshot.
func readSnapshot(ctx context.Context, store storage.SessionStorage) (Snapshot, error) {
	token, err := getOptional(ctx, store, TokenKey)
	if err != nil {
		return Snapshot{}, err
	}
	user, err := getOptional(ctx, store, UserKey)
	if err != nil {
		return Snapshot{}, err
	}
	rawExpiresAt, err := getOptional(ctx, store, ExpiresAtKey)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Token:     token,
		User:      user,
		ExpiresAt: parseExpiresAt(rawExpiresAt),
	}, nil
}

func getOptional(ctx context.Context, store storage.SessionStorage, key string) (string, error) {
	value, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func parseExpiresAt(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func writeSnapshot(ctx context.Context, store storage.SessionStorage, s Snapshot) error {
	entries := []struct {
		key   string
		value string
	}{
		{TokenKey, s.Token},
		{UserKey, s.User},
		{ExpiresAtKey, strconv.FormatInt(s.ExpiresAt, 10)},
	}

	for _, e := range entries {
		if err := store.Set(ctx, e.key, e.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", e.key, err)
		}
	}
	return nil
}

// clearSnapshot removes all entries, attempting each one even after a failure
func clearSnapshot(ctx context.Context, store storage.SessionStorage) error {
	var errs []error
	for _, key := range []string{TokenKey, UserKey, ExpiresAtKey} {
		if err := store.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
