// Package records holds the canonical, load-once employee collection for a
// session.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rcliao/staff-directory/internal/model"
)

var (
	// ErrNotFound is returned for ids absent from the collection.
	ErrNotFound = errors.New("employee not found")

	// ErrAlreadyLoaded is returned by a second Load call.
	ErrAlreadyLoaded = errors.New("records already loaded")
)

// State is the load state of a Store.
type State int

const (
	// Loading is the initial state: no records are visible yet.
	Loading State = iota
	// Ready means the collection loaded and validated.
	Ready
	// Failed means the load failed; no records are visible.
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loader produces the enriched employee collection.
type Loader interface {
	LoadEmployees(ctx context.Context) ([]model.Employee, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]model.Employee, error)

// LoadEmployees implements Loader.
func (f LoaderFunc) LoadEmployees(ctx context.Context) ([]model.Employee, error) { return f(ctx) }

// Store owns the record collection. Records are read-only once loaded.
type Store struct {
	mu      sync.RWMutex
	state   State
	err     error
	started bool
	list    []model.Employee
	byID    map[int]int
}

// New returns a Store in the Loading state.
func New() *Store {
	return &Store{}
}

// Load populates the store once from loader. Loader failures and invariant
// violations leave the store Failed with no records.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.started = true
	s.mu.Unlock()

	employees, err := loader.LoadEmployees(ctx)
	if err == nil {
		err = model.ValidateCollection(employees)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed
		s.err = fmt.Errorf("load employees: %w", err)
		return s.err
	}

	s.list = employees
	s.byID = make(map[int]int, len(employees))
	for i, e := range employees {
		s.byID[e.ID] = i
	}
	s.state = Ready
	return nil
}

// State returns the current load state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the load error when Failed.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// All returns the records in load order. It is empty unless Ready. The
// returned slice is a copy.
func (s *Store) All() []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Employee, len(s.list))
	copy(out, s.list)
	return out
}

// Len returns the number of visible records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(id int) (model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return model.Employee{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.list[i], nil
}

// Subset resolves ids in the order given. Ids with no record are
// returned in missing, also in order.
func (s *Store) Subset(ids []int) (found []model.Employee, missing []int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found = make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		i, ok := s.byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		found = append(found, s.list[i])
	}
	return found, missing
}
