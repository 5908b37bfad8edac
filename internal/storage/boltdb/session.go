package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/dietpanel/internal/storage"
)

// View is one execution context over the shared BoltDB file.
// bbolt locks the file exclusively, so all views live in one process
// and changes are fanned out in memory.
type View struct {
	storage *Storage
	origin  string
}

// Compile-time check that View implements storage.SessionStorage
var _ storage.SessionStorage = (*View)(nil)

// Open returns a new view with its own origin
func (s *Storage) Open() *View {
	return &View{storage: s, origin: uuid.New().String()}
}

// Origin returns the view identifier attached to its changes
func (v *View) Origin() string {
	return v.origin
}

// Get retrieves the value stored under key
func (v *View) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := v.storage.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}
		// Копируем: срез валиден только внутри транзакции
		value = string(data)
		return nil
	})
	if err != nil {
		return "", mapErr(err)
	}

	return value, nil
}

// Set stores value under key and notifies other views if it changed
func (v *View) Set(ctx context.Context, key, value string) error {
	changed := false

	err := v.storage.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		old := bucket.Get([]byte(key))
		if old != nil && bytes.Equal(old, []byte(value)) {
			return nil
		}
		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return mapErr(err)
	}

	if changed {
		v.storage.broadcaster.Publish(storage.Change{Key: key, Origin: v.origin})
	}
	return nil
}

// Remove deletes key and notifies other views if it existed
func (v *View) Remove(ctx context.Context, key string) error {
	existed := false

	err := v.storage.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get([]byte(key)) == nil {
			return nil
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		existed = true
		return nil
	})
	if err != nil {
		return mapErr(err)
	}

	if existed {
		v.storage.broadcaster.Publish(storage.Change{Key: key, Origin: v.origin})
	}
	return nil
}

// Watch subscribes to changes made by other views
func (v *View) Watch(ctx context.Context) (<-chan storage.Change, error) {
	return v.storage.broadcaster.Subscribe(ctx, v.origin)
}
