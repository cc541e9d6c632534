// Package bookmark implements the shared set of bookmarked employee ids.
//
// The in-memory set is authoritative. Every mutation hands a snapshot of the
// set to a background writer and then notifies observers; the mutator never
// waits for the write, and a failed write never rolls the set back.
package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rcliao/staff-directory/internal/store"
)

// DefaultKey is the KV key holding the persisted set.
const DefaultKey = "bookmarked-employees"

// Observer receives the bookmark ids after each mutation, in insertion
// order. Observers run synchronously and must not mutate the store.
type Observer func(ids []int)

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for load and persistence problems.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

type subscription struct {
	id int
	fn Observer
}

// Store is the bookmark set. It is safe for concurrent use.
type Store struct {
	kv  store.KV
	key string
	log zerolog.Logger

	// mu guards the set. notifyMu is taken before mu is released so
	// observers see mutations in the order they were applied.
	mu        sync.Mutex
	notifyMu  sync.Mutex
	ids       map[int]struct{}
	order     []int
	observers []subscription
	nextSubID int

	w *writer
}

// Open loads the persisted set from kv and starts the background writer.
// Missing or malformed data yields an empty set.
func Open(ctx context.Context, kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		log: zerolog.Nop(),
		ids: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load(ctx)
	s.w = startWriter(s.kv, s.key, s.log)
	return s
}

func (s *Store) load(ctx context.Context) {
	payload, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("read bookmarks failed, starting empty")
		return
	}

	var ids []int
	if err := json.Unmarshal(payload, &ids); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("malformed bookmark data, starting empty")
		return
	}
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// IsBookmarked reports whether id is in the set.
func (s *Store) IsBookmarked(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Bookmarks returns the ids in insertion order.
func (s *Store) Bookmarks() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of bookmarked ids.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Add bookmarks id. Adding a present id still persists and notifies.
func (s *Store) Add(id int) {
	s.mutate(func() {
		if _, ok := s.ids[id]; ok {
			return
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	})
}

// Remove drops id. Removing an absent id is a no-op that still persists
// and notifies.
func (s *Store) Remove(id int) {
	s.mutate(func() {
		s.removeLocked(id)
	})
}

// Toggle flips the membership of id and reports whether it is now
// bookmarked.
func (s *Store) Toggle(id int) (bookmarked bool) {
	s.mutate(func() {
		if _, ok := s.ids[id]; ok {
			s.removeLocked(id)
			return
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
		bookmarked = true
	})
	return bookmarked
}

// ClearAll empties the set in a single step. Observers are notified once.
func (s *Store) ClearAll() {
	s.mutate(func() {
		s.ids = make(map[int]struct{})
		s.order = nil
	})
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			defer s.notifyMu.Unlock()
			for i, sub := range s.observers {
				if sub.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Flush blocks until every mutation issued so far has been written.
func (s *Store) Flush(ctx context.Context) error {
	return s.w.flush(ctx)
}

// Close flushes pending writes and stops the writer. Mutations after Close
// change the in-memory set only.
func (s *Store) Close(ctx context.Context) error {
	return s.w.close(ctx)
}

// LastPersistError returns the error of the most recent failed write, or
// nil if the latest write succeeded.
func (s *Store) LastPersistError() error {
	return s.w.lastError()
}

func (s *Store) mutate(apply func()) {
	s.mu.Lock()
	apply()
	ids := s.snapshotLocked()
	s.w.enqueue(ids)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, sub := range s.observers {
		sub.fn(append([]int(nil), ids...))
	}
}

func (s *Store) removeLocked(id int) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) snapshotLocked() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}
