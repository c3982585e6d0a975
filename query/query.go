// Package query remembers past searches and suggests them while typing.
package query

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// History is a ranked set of past queries stored in a gache file.
type History struct {
	cache *gache.Cache[map[string]*record]

	mu      sync.Mutex
	matches map[string][]*record
}

// NewHistory opens the history file at path.
func NewHistory(path string) *History {
	return &History{
		cache: gache.New[map[string]*record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		matches: make(map[string][]*record),
	}
}

var (
	defaultHistory     *History
	defaultHistoryOnce sync.Once
)

// Default is the history stored under the cache directory.
func Default() *History {
	defaultHistoryOnce.Do(func() {
		defaultHistory = NewHistory(where.Queries())
	})
	return defaultHistory
}

// Remember records q in the default history.
func Remember(q string, weight int) error {
	return Default().Remember(q, weight)
}

// Suggest returns the best match from the default history.
func Suggest(q string) mo.Option[string] {
	return Default().Suggest(q)
}

// SuggestMany returns every match from the default history.
func SuggestMany(q string) []string {
	return Default().SuggestMany(q)
}

// Remember adds q with the given weight, or raises its rank if already known.
// Blank queries are ignored.
func (h *History) Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	records, expired, err := h.cache.Get()
	if expired || err != nil || records == nil {
		records = make(map[string]*record)
	}

	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	clear(h.matches)
	return h.cache.Set(records)
}

// Suggest returns the highest ranked past query matching q.
func (h *History) Suggest(q string) mo.Option[string] {
	suggestions := h.SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, highest rank first.
// It returns nothing when suggestions are disabled.
func (h *History) SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	if q == "" {
		return []string{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	matches, ok := h.matches[q]
	if !ok {
		records, expired, err := h.cache.Get()
		if err != nil || expired || records == nil {
			return []string{}
		}

		for _, r := range records {
			if r.Query != q && fuzzy.Match(q, r.Query) {
				matches = append(matches, r)
			}
		}

		slices.SortFunc(matches, func(a, b *record) int {
			if a.Rank != b.Rank {
				return cmp.Compare(b.Rank, a.Rank)
			}
			return cmp.Compare(a.Query, b.Query)
		})

		h.matches[q] = matches
	}

	return lo.Map(matches, func(r *record, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
