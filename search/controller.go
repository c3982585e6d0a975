// Package search turns settled keystrokes, filter changes and scrolling into
// paginated movie search requests.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/samber/mo"
)

// Searcher fetches one page of results.
type Searcher interface {
	SearchMovies(ctx context.Context, q omdb.Query) (*omdb.Page, error)
}

// Observer receives snapshots after every change.
type Observer func(Snapshot)

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds every request issued by the controller.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithObserver registers an observer. Observers are called outside the
// controller's lock and must not block for long.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithContext sets the parent of every request context.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.parent = ctx }
}

// Controller is the search screen's state machine.
// Every trigger is safe to call from any goroutine.
type Controller struct {
	searcher  Searcher
	notifier  notify.Notifier
	timeout   time.Duration
	parent    context.Context
	observers []Observer

	mu          sync.Mutex
	state       State
	text        string
	sessionText string
	filters     omdb.Filters
	page        int
	totalPages  int
	items       []omdb.Item
	err         error
	failed      mo.Option[omdb.Query]
	generation  uint64
	cancel      context.CancelFunc
	closed      bool
	revision    uint64

	emitMu      sync.Mutex
	lastEmitted uint64
}

// New returns an idle controller.
func New(searcher Searcher, notifier notify.Notifier, options ...Option) *Controller {
	if notifier == nil {
		notifier = notify.Discard
	}

	c := &Controller{
		searcher: searcher,
		notifier: notifier,
		parent:   context.Background(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// OnQueryChanged records settled input text. Blank text is recorded without
// a request and leaves the list untouched. Text equal to the current query
// is ignored unless the controller is idle or failed.
//
// The returned channel is closed once the issued request settles, or
// immediately when nothing was issued.
func (c *Controller) OnQueryChanged(text string) <-chan struct{} {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return settled()
	}

	c.text = text
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		c.finishLocked()
		return settled()
	}

	if trimmed == c.sessionText && c.state != Idle && c.state != Error {
		c.finishLocked()
		return settled()
	}

	c.sessionText = trimmed
	c.resetLocked()
	return c.issueLocked(c.queryLocked())
}

// OnFilterApplied replaces the filters and restarts the current query from
// page 1, even when the filters did not change. Invalid filters are rejected
// and change nothing. With blank text the list is cleared and the controller
// returns to Idle.
func (c *Controller) OnFilterApplied(filters omdb.Filters) (<-chan struct{}, error) {
	if err := filters.Validate(); err != nil {
		return settled(), err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return settled(), nil
	}

	c.filters = filters
	c.resetLocked()

	trimmed := strings.TrimSpace(c.text)
	if trimmed == "" {
		c.abandonLocked()
		c.sessionText = ""
		c.state = Idle
		c.err = nil
		c.finishLocked()
		return settled(), nil
	}

	c.sessionText = trimmed
	return c.issueLocked(c.queryLocked()), nil
}

// OnEndReached requests the next page. It does nothing while loading, when
// the list is empty or when the last page is already loaded.
func (c *Controller) OnEndReached() <-chan struct{} {
	c.mu.Lock()
	if c.closed || c.state == Loading || len(c.items) == 0 || c.page >= c.totalPages {
		c.mu.Unlock()
		return settled()
	}

	c.page++
	return c.issueLocked(c.queryLocked())
}

// Retry re-issues the request that failed last. It does nothing unless the
// controller is in the Error state.
func (c *Controller) Retry() <-chan struct{} {
	c.mu.Lock()
	failed, ok := c.failed.Get()
	if c.closed || c.state != Error || !ok {
		c.mu.Unlock()
		return settled()
	}

	if failed.Page == 1 {
		c.items = nil
		c.totalPages = 0
	}
	c.page = failed.Page
	return c.issueLocked(failed)
}

// Close cancels the in-flight request. Results arriving later are dropped
// and every further trigger is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.abandonLocked()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) queryLocked() omdb.Query {
	return omdb.Query{
		Text:    c.sessionText,
		Filters: c.filters,
		Page:    c.page,
	}
}

func (c *Controller) resetLocked() {
	c.page = 1
	c.totalPages = 0
	c.items = nil
	c.failed = mo.None[omdb.Query]()
}

// abandonLocked invalidates the in-flight request, if any.
func (c *Controller) abandonLocked() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) issueLocked(q omdb.Query) <-chan struct{} {
	c.abandonLocked()
	generation := c.generation

	ctx, cancel := context.WithCancel(c.parent)
	if c.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, c.timeout)
		cancel = chain(cancelTimeout, cancel)
	}
	c.cancel = cancel

	c.state = Loading
	c.finishLocked()

	log.WithFields(log.Fields{"query": q.Text, "page": q.Page, "generation": generation}).Debug("issuing search")

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		page, err := c.searcher.SearchMovies(ctx, q)
		c.complete(generation, q, page, err)
	}()

	return done
}

func (c *Controller) complete(generation uint64, q omdb.Query, page *omdb.Page, err error) {
	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		log.WithFields(log.Fields{"query": q.Text, "page": q.Page, "generation": generation}).Debug("discarding stale search result")
		return
	}

	c.cancel = nil

	if err != nil {
		c.state = Error
		c.err = err
		c.failed = mo.Some(q)
		if q.Page > 1 {
			c.page = q.Page - 1
		}
		c.finishLocked()

		log.WithFields(log.Fields{"query": q.Text, "page": q.Page, "error": err}).Error("search failed")
		c.notifier.ShowNotice(omdb.Message(err), notify.Options{Variant: notify.Error})
		return
	}

	if page == nil {
		page = &omdb.Page{}
	}

	if q.Page <= 1 {
		c.items = append([]omdb.Item{}, page.Items...)
	} else {
		c.items = append(c.items, page.Items...)
	}
	c.page = q.Page
	c.totalPages = page.TotalPages()
	c.state = Loaded
	c.err = nil
	c.failed = mo.None[omdb.Query]()
	c.finishLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Revision:   c.revision,
		State:      c.state,
		Text:       c.text,
		Query:      c.sessionText,
		Filters:    c.filters,
		Page:       c.page,
		TotalPages: c.totalPages,
		Items:      c.items,
		Err:        c.err,
	}.clone()
}

// finishLocked bumps the revision, releases the lock and notifies observers.
func (c *Controller) finishLocked() {
	c.revision++
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snapshot)
}

func (c *Controller) emit(snapshot Snapshot) {
	if len(c.observers) == 0 {
		return
	}

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	if snapshot.Revision <= c.lastEmitted {
		return
	}
	c.lastEmitted = snapshot.Revision

	for _, observer := range c.observers {
		observer(snapshot)
	}
}

func settled() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

func chain(fns ...context.CancelFunc) context.CancelFunc {
	return func() {
		for _, fn := range fns {
			fn()
		}
	}
}
