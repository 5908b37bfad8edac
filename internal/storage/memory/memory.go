// Package memory provides an in-memory SessionStorage shared by several views
// of the same process. It backs tests and the demo mode of the CLI.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/dietpanel/internal/storage"
)

// Hub holds the shared data; each view obtained via Open acts as a separate tab
type Hub struct {
	data        map[string]string
	broadcaster *storage.Broadcaster
	mu          sync.RWMutex
}

// New creates an empty hub
func New() *Hub {
	return &Hub{
		data:        make(map[string]string),
		broadcaster: storage.NewBroadcaster(),
	}
}

// Open returns a new view with its own origin
func (h *Hub) Open() *Store {
	return &Store{hub: h, origin: uuid.New().String()}
}

// Close closes all watch channels
func (h *Hub) Close() error {
	h.broadcaster.Close()
	return nil
}

// Store is a single view over the hub
type Store struct {
	hub    *Hub
	origin string
}

// Compile-time check that Store implements storage.SessionStorage
var _ storage.SessionStorage = (*Store)(nil)

// Origin returns the view identifier attached to its changes
func (s *Store) Origin() string {
	return s.origin
}

// Get returns the value stored under key
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()

	value, ok := s.hub.data[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return value, nil
}

// Set stores value and notifies other views if it changed
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.hub.mu.Lock()
	old, existed := s.hub.data[key]
	s.hub.data[key] = value
	s.hub.mu.Unlock()

	if !existed || old != value {
		s.hub.broadcaster.Publish(storage.Change{Key: key, Origin: s.origin})
	}
	return nil
}

// Remove deletes key and notifies other views if it existed
func (s *Store) Remove(ctx context.Context, key string) error {
	s.hub.mu.Lock()
	_, existed := s.hub.data[key]
	delete(s.hub.data, key)
	s.hub.mu.Unlock()

	if existed {
		s.hub.broadcaster.Publish(storage.Change{Key: key, Origin: s.origin})
	}
	return nil
}

// Watch subscribes to changes made by other views
func (s *Store) Watch(ctx context.Context) (<-chan storage.Change, error) {
	return s.hub.broadcaster.Subscribe(ctx, s.origin)
}
