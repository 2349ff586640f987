package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ssafy-wtd/wtd/internal/activity"
	"github.com/ssafy-wtd/wtd/internal/session"
)

// StorageKey is the slot the filter state is persisted under.
const StorageKey = "wtd_activity_state"

// Store holds the filter state and mirrors every change into a session slot.
type Store struct {
	mu      sync.RWMutex
	state   FilterState
	storage session.Storage
	key     string
	logger  *zap.Logger

	subMu  sync.Mutex
	subs   map[int]chan FilterState
	nextID int
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore loads the persisted state from storage, falling back to defaults
// for a missing slot, an unparseable slot, or any invalid field.
func NewStore(ctx context.Context, storage session.Storage, opts ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("store requires session storage")
	}
	s := &Store{
		storage: storage,
		key:     StorageKey,
		logger:  zap.NewNop(),
		subs:    make(map[int]chan FilterState),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		s.state = DefaultState()
		return s, nil
	}

	loaded, dropped, err := decodeState(data)
	if err != nil {
		s.logger.Warn("persisted state unreadable, using defaults",
			zap.String("key", s.key), zap.Error(err))
		s.state = DefaultState()
		return s, nil
	}
	if len(dropped) > 0 {
		s.logger.Warn("persisted state fields reset to defaults",
			zap.String("key", s.key), zap.Strings("fields", dropped))
	}
	s.state = loaded
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to the live state and persists the result. The mutation
// is kept in memory even when persisting fails; the error is returned.
func (s *Store) Update(ctx context.Context, fn func(*FilterState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.state.normalize()
	err := s.persistLocked(ctx)
	s.publish(s.state)
	return err
}

// SetFilters replaces the filters after validating them.
func (s *Store) SetFilters(ctx context.Context, f Filters) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f = f.Clone()
	return s.Update(ctx, func(st *FilterState) {
		st.Filters = f
	})
}

// SetExpandedSearch toggles the expanded search panel flag.
func (s *Store) SetExpandedSearch(ctx context.Context, expanded bool) error {
	return s.Update(ctx, func(st *FilterState) {
		st.IsExpandedSearch = expanded
	})
}

// MarkSearched records that a search was attempted.
func (s *Store) MarkSearched(ctx context.Context) error {
	return s.Update(ctx, func(st *FilterState) {
		st.HasSearched = true
	})
}

// SetRecommendations replaces the recommendation list wholesale and marks
// the state as searched.
func (s *Store) SetRecommendations(ctx context.Context, places []activity.PlaceInfo) error {
	places = clonePlaces(places)
	return s.Update(ctx, func(st *FilterState) {
		st.Recommendations = places
		st.HasSearched = true
	})
}

// Reset restores the defaults in place and removes the persisted slot.
// The slot stays absent until the next Update.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DefaultState()
	err := s.storage.Remove(ctx, s.key)
	s.publish(s.state)
	if err != nil {
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

// Subscribe returns a channel receiving the latest state after each change
// and a function that cancels the subscription. Slow readers only see the
// most recent state.
func (s *Store) Subscribe() (<-chan FilterState, func()) {
	ch := make(chan FilterState, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// publish runs with mu held so subscribers see states in mutation order.
func (s *Store) publish(snap FilterState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap.Clone():
		default:
		}
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}
