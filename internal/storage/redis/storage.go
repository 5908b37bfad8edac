// Package redis stores session entries in Redis and propagates changes
// between processes through a pub/sub channel.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/iudanet/dietpanel/internal/storage"
)

// DefaultPrefix namespaces keys and the change channel
const DefaultPrefix = "dietpanel:"

// Client is the subset of go-redis used by Storage
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *goredis.PubSub
}

// Storage is a Redis-backed session storage. Each instance is one origin.
type Storage struct {
	client Client
	logger *slog.Logger
	origin string
	prefix string
}

// Compile-time check that Storage implements storage.SessionStorage
var _ storage.SessionStorage = (*Storage)(nil)

// Option configures Storage
type Option func(*Storage)

// WithPrefix overrides DefaultPrefix
func WithPrefix(prefix string) Option {
	return func(s *Storage) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger used by the watch goroutine
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Redis-backed session storage
func New(client Client, opts ...Option) *Storage {
	s := &Storage{
		client: client,
		logger: slog.Default(),
		origin: uuid.New().String(),
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Origin returns the identifier attached to changes made through this instance
func (s *Storage) Origin() string {
	return s.origin
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

func (s *Storage) channel() string {
	return s.prefix + "changes"
}

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", storage.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key and publishes a change if the value differs
func (s *Storage) Set(ctx context.Context, key, value string) error {
	old, err := s.Get(ctx, key)
	switch {
	case err == nil && old == value:
		return nil
	case err != nil && !errors.Is(err, storage.ErrKeyNotFound):
		return err
	}

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return s.publish(ctx, key)
}

// Remove deletes key and publishes a change if it existed
func (s *Storage) Remove(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if n == 0 {
		return nil
	}

	return s.publish(ctx, key)
}

// Watch subscribes to the change channel and reports changes of other origins
func (s *Storage) Watch(ctx context.Context) (<-chan storage.Change, error) {
	pubsub := s.client.Subscribe(ctx, s.channel())

	// Ждём подтверждения подписки, чтобы не потерять первые сообщения
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.channel(), err)
	}

	out := make(chan storage.Change)
	go func() {
		defer close(out)
		defer func() {
			if err := pubsub.Close(); err != nil {
				s.logger.Warn("failed to close redis subscription", "error", err)
			}
		}()
		s.forward(ctx, pubsub.Channel(), out)
	}()

	return out, nil
}

// forward decodes pub/sub messages until ctx is done or msgs is closed
func (s *Storage) forward(ctx context.Context, msgs <-chan *goredis.Message, out chan<- storage.Change) {
	for {
		var msg *goredis.Message
		select {
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			msg = m
		}

		change, err := decodeChange(msg.Payload)
		if err != nil {
			s.logger.Warn("skipping malformed session change", "error", err)
			continue
		}
		if change.Origin == s.origin {
			continue
		}

		select {
		case out <- change:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Storage) publish(ctx context.Context, key string) error {
	data, err := json.Marshal(storage.Change{Key: key, Origin: s.origin})
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	if err := s.client.Publish(ctx, s.channel(), data).Err(); err != nil {
		return fmt.Errorf("failed to publish change of %s: %w", key, err)
	}
	return nil
}

func decodeChange(payload string) (storage.Change, error) {
	var change storage.Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return storage.Change{}, fmt.Errorf("failed to unmarshal change: %w", err)
	}
	if change.Key == "" {
		return storage.Change{}, fmt.Errorf("change has no key")
	}
	return change, nil
}
