package storage

import (
	"context"
	"sync"
)

// changeBuffer is the per-subscriber queue size. When a queue is full the
// oldest change is dropped, so the latest change always reaches the subscriber.
const changeBuffer = 16

type subscriber struct {
	ch     chan Change
	origin string
}

// Broadcaster fans out changes to subscribers living in the same process.
// A subscriber never receives changes published under its own origin.
type Broadcaster struct {
	subs   map[int]subscriber
	done   chan struct{}
	mu     sync.Mutex
	nextID int
	closed bool
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]subscriber),
		done: make(chan struct{}),
	}
}

// Subscribe registers a subscriber for origin. The returned channel is closed
// when ctx is done or the broadcaster is closed.
func (b *Broadcaster) Subscribe(ctx context.Context, origin string) (<-chan Change, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrStorageClosed
	}
	id := b.nextID
	b.nextID++
	ch := make(chan Change, changeBuffer)
	b.subs[id] = subscriber{ch: ch, origin: origin}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(id)
		case <-b.done:
		}
	}()

	return ch, nil
}

// Publish delivers change to every subscriber of another origin
func (b *Broadcaster) Publish(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.origin == change.Origin {
			continue
		}
		deliver(sub.ch, change)
	}
}

// Close closes all subscriber channels. Further subscriptions fail.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}

// deliver enqueues change, dropping the oldest queued one if ch is full
func deliver(ch chan Change, change Change) {
	for {
		select {
		case ch <- change:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (b *Broadcaster) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		close(sub.ch)
		delete(b.subs, id)
	}
}
