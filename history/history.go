// Package history keeps track of the titles whose details were viewed.
package history

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

var (
	mu     sync.Mutex
	cacher = sync.OnceValue(func() *gache.Cache[map[string]*Entry] {
		return gache.New[map[string]*Entry](&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
)

// Get returns every record keyed by lowercased IMDb identifier.
func Get() (map[string]*Entry, error) {
	mu.Lock()
	defer mu.Unlock()

	return get()
}

func get() (map[string]*Entry, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records a view of the title. Repeated views bump the counter.
func Save(details *omdb.Details) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return err
	}

	entry := newEntry(details)
	if existing, ok := saved[entry.key()]; ok {
		entry.Views += existing.Views
	}

	saved[entry.key()] = entry
	return cacher().Set(saved)
}

// Recent returns up to limit records, most recently viewed first.
// A non-positive limit returns all of them.
func Recent(limit int) ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return cmp.Or(b.ViewedAt.Compare(a.ViewedAt), cmp.Compare(a.ID, b.ID))
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// Remove forgets the title with the given identifier.
func Remove(id string) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return err
	}

	delete(saved, strings.ToLower(strings.TrimSpace(id)))
	return cacher().Set(saved)
}
