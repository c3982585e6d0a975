// Package favorites keeps the user's favorite titles, most recent first.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/log"
	"github.com/samber/lo"
)

// Key is the storage key holding the JSON array of identifiers.
const Key = "favorites"

var (
	ErrStorageRead  = errors.New("reading favorites failed")
	ErrStorageWrite = errors.New("writing favorites failed")
)

// Store is an ordered, duplicate-free set of identifiers persisted as a whole on every change.
//
// Mutations through one Store are serialized. Two Stores sharing a backend can still
// lose each other's updates; favorites are single-user data and that is accepted.
type Store struct {
	kv kv.Store
	mu sync.Mutex
}

// New returns a favorites store on top of the given backend.
func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load reads the persisted set, surfacing read and parse errors.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}

	ids, err := decode(raw.OrEmpty())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	return ids, nil
}

func decode(value string) ([]string, error) {
	if value == "" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// List returns the favorites, most recent first. Failures are logged and read as empty.
func (s *Store) List(ctx context.Context) []string {
	ids, err := s.Load(ctx)
	if err != nil {
		log.Warn(err)
		return []string{}
	}
	return ids
}

// IsFavorite reports whether id is in the persisted set.
func (s *Store) IsFavorite(ctx context.Context, id string) bool {
	return lo.Contains(s.List(ctx), id)
}

// Add puts id first. Adding an id that is already present changes nothing.
func (s *Store) Add(ctx context.Context, id string) error {
	return s.mutate(ctx, func(ids []string) []string {
		if lo.Contains(ids, id) {
			return ids
		}
		return append([]string{id}, ids...)
	})
}

// Remove drops every entry equal to id.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, func(ids []string) []string {
		return lo.Without(ids, id)
	})
}

// Toggle adds id when absent and removes it otherwise. It returns the new membership.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	var added bool
	err := s.mutate(ctx, func(ids []string) []string {
		if lo.Contains(ids, id) {
			added = false
			return lo.Without(ids, id)
		}
		added = true
		return append([]string{id}, ids...)
	})
	return added, err
}

// Clear removes every favorite.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]string) []string { return []string{} })
}

// mutate runs a read-modify-write cycle. The write is detached from ctx cancellation
// so an issued mutation always reaches storage. A failed read aborts the cycle.
func (s *Store) mutate(ctx context.Context, change func([]string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrStorageWrite, err)
		log.Error(err)
		return err
	}

	// A corrupt value is replaced, an unreadable one is left alone.
	ids, err := decode(raw.OrEmpty())
	if err != nil {
		log.Warn(fmt.Errorf("%w: %w", ErrStorageRead, err))
		ids = []string{}
	}

	data, err := json.Marshal(change(ids))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		err = fmt.Errorf("%w: %w", ErrStorageWrite, err)
		log.Error(err)
		return err
	}

	return nil
}
