package favorites

import (
	"context"
	"sync"

	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/omdb"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// DetailsFetcher looks up a single title.
type DetailsFetcher interface {
	GetMovieDetails(ctx context.Context, id string) (*omdb.Details, error)
}

// LoadDetails fetches the details of every id, at most concurrency at a time.
// Ids whose lookup fails are skipped; the rest keep the order of ids.
func LoadDetails(ctx context.Context, fetcher DetailsFetcher, ids []string, concurrency int) []*omdb.Details {
	results := make([]*omdb.Details, len(ids))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			details, err := fetcher.GetMovieDetails(ctx, id)
			if err != nil {
				log.WithFields(log.Fields{"id": id, "error": err}).Warn("skipping favorite without details")
				return nil
			}
			results[i] = details
			return nil
		})
	}

	_ = g.Wait()
	return lo.Compact(results)
}

// Loader serves the favorites screen. It reloads details only when the number
// of favorites differs from the previous load, or after Invalidate.
type Loader struct {
	store       *Store
	fetcher     DetailsFetcher
	concurrency int

	mu      sync.Mutex
	loaded  bool
	count   int
	details []*omdb.Details
}

func NewLoader(store *Store, fetcher DetailsFetcher, concurrency int) *Loader {
	return &Loader{
		store:       store,
		fetcher:     fetcher,
		concurrency: concurrency,
	}
}

// Load returns the favorites' details and whether they were fetched anew.
func (l *Loader) Load(ctx context.Context) ([]*omdb.Details, bool) {
	ids := l.store.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded && len(ids) == l.count {
		return l.details, false
	}

	l.details = LoadDetails(ctx, l.fetcher, ids, l.concurrency)
	l.count = len(ids)
	l.loaded = true

	return l.details, true
}

// Invalidate forces the next Load to fetch.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loaded = false
}
