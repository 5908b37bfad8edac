package storage

import (
	"context"
)

//go:generate moq -out storage_mock.go . SessionStorage

// SessionStorage defines a durable string key-value store shared by several
// execution contexts (views). Each view has its own origin; changes made by
// one view are reported to the others through Watch.
type SessionStorage interface {
	// Get returns the stored value.
	// Returns ErrKeyNotFound if the key does not exist
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error
	Remove(ctx context.Context, key string) error

	// Watch returns changes made by other views. The channel is closed
	// when ctx is done or the storage is closed.
	Watch(ctx context.Context) (<-chan Change, error)
}

// Change describes a mutation of a single key made by some view
type Change struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}
