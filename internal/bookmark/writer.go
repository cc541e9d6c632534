package bookmark

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rcliao/staff-directory/internal/store"
)

// writer persists bookmark snapshots on a single goroutine. Snapshots that
// are superseded before the goroutine picks them up are dropped; only the
// latest state is written.
type writer struct {
	kv  store.KV
	key string
	log zerolog.Logger

	mu      sync.Mutex
	pending []int
	dirty   bool
	err     error

	kick    chan struct{}
	barrier chan chan struct{}
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func startWriter(kv store.KV, key string, log zerolog.Logger) *writer {
	w := &writer{
		kv:      kv,
		key:     key,
		log:     log,
		kick:    make(chan struct{}, 1),
		barrier: make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue records ids as the next state to write. It never blocks.
func (w *writer) enqueue(ids []int) {
	w.mu.Lock()
	w.pending = ids
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.kick:
			w.write()
		case ack := <-w.barrier:
			w.write()
			close(ack)
		case <-w.stop:
			w.write()
			return
		}
	}
}

func (w *writer) write() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	ids := w.pending
	w.dirty = false
	w.mu.Unlock()

	if ids == nil {
		ids = []int{}
	}
	payload, err := json.Marshal(ids)
	if err == nil {
		err = w.kv.Put(context.Background(), w.key, payload)
	}

	w.mu.Lock()
	w.err = err
	w.mu.Unlock()

	if err != nil {
		w.log.Warn().Err(err).Str("key", w.key).Int("count", len(ids)).Msg("persist bookmarks failed")
		return
	}
	w.log.Debug().Str("key", w.key).Int("count", len(ids)).Msg("bookmarks persisted")
}

func (w *writer) flush(ctx context.Context) error {
	ack := make(chan struct{})
	select {
	case w.barrier <- ack:
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) close(ctx context.Context) error {
	w.once.Do(func() { close(w.stop) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) lastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
