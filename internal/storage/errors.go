package storage

import "errors"

// Common storage errors
var (
	// ErrKeyNotFound indicates that the key has no value in storage
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
