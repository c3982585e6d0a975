package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	. "github.com/smartystreets/goconvey/convey"
)

type reply struct {
	page *omdb.Page
	err  error
}

type call struct {
	ctx   context.Context
	query omdb.Query
	reply chan reply
}

func (c *call) succeed(page *omdb.Page) { c.reply <- reply{page: page} }
func (c *call) fail(err error)          { c.reply <- reply{err: err} }

// fakeSearcher hands every request to the test, which answers it explicitly.
type fakeSearcher struct {
	calls chan *call
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{calls: make(chan *call, 16)}
}

func (f *fakeSearcher) SearchMovies(ctx context.Context, q omdb.Query) (*omdb.Page, error) {
	c := &call{ctx: ctx, query: q, reply: make(chan reply, 1)}
	f.calls <- c
	r := <-c.reply
	return r.page, r.err
}

func (f *fakeSearcher) next() *call {
	select {
	case c := <-f.calls:
		return c
	case <-time.After(time.Second):
		panic("expected a search request")
	}
}

func (f *fakeSearcher) idle() bool {
	select {
	case c := <-f.calls:
		f.calls <- c
		return false
	case <-time.After(20 * time.Millisecond):
		return true
	}
}

type notices struct {
	mu   sync.Mutex
	list []notify.Notice
}

func (n *notices) ShowNotice(message string, options notify.Options) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, notify.Notice{Message: message, Options: options})
}

func (n *notices) all() []notify.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notice{}, n.list...)
}

func page(prefix string, count, total int) *omdb.Page {
	items := make([]omdb.Item, count)
	for i := range items {
		items[i] = omdb.Item{ID: fmt.Sprintf("%s%d", prefix, i), Title: prefix, Type: omdb.Movie}
	}
	return &omdb.Page{Items: items, TotalCount: total}
}

func wait(done <-chan struct{}) {
	select {
	case <-done:
	case <-time.After(time.Second):
		panic("request did not settle")
	}
}

func TestQueryChanged(t *testing.T) {
	Convey("Given an idle controller", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard)
		defer controller.Close()

		So(controller.Snapshot().State, ShouldEqual, Idle)

		Convey("Whitespace-only text never searches", func() {
			for _, text := range []string{"", " ", "   ", "\t\n "} {
				wait(controller.OnQueryChanged(text))
			}

			So(searcher.idle(), ShouldBeTrue)
			snapshot := controller.Snapshot()
			So(snapshot.State, ShouldEqual, Idle)
			So(snapshot.Text, ShouldEqual, "\t\n ")
		})

		Convey("When text settles", func() {
			done := controller.OnQueryChanged(" alien ")

			c := searcher.next()
			So(c.query.Text, ShouldEqual, "alien")
			So(c.query.Page, ShouldEqual, 1)
			So(controller.Snapshot().State, ShouldEqual, Loading)

			c.succeed(page("a", 10, 95))
			wait(done)

			Convey("Then the first page is loaded", func() {
				snapshot := controller.Snapshot()
				So(snapshot.State, ShouldEqual, Loaded)
				So(snapshot.Items, ShouldHaveLength, 10)
				So(snapshot.Page, ShouldEqual, 1)
				So(snapshot.TotalPages, ShouldEqual, 10)
				So(snapshot.HasMore(), ShouldBeTrue)
			})

			Convey("Then the same text again is ignored", func() {
				wait(controller.OnQueryChanged("alien"))
				So(searcher.idle(), ShouldBeTrue)
				So(controller.Snapshot().Items, ShouldHaveLength, 10)
			})

			Convey("Then clearing the input keeps the list", func() {
				wait(controller.OnQueryChanged(""))
				So(searcher.idle(), ShouldBeTrue)

				snapshot := controller.Snapshot()
				So(snapshot.Items, ShouldHaveLength, 10)
				So(snapshot.State, ShouldEqual, Loaded)
				So(snapshot.Query, ShouldEqual, "alien")
			})

			Convey("Then new text resets to page 1 with an empty list", func() {
				controller.OnQueryChanged("predator")

				snapshot := controller.Snapshot()
				So(snapshot.Items, ShouldBeEmpty)
				So(snapshot.Page, ShouldEqual, 1)
				So(snapshot.State, ShouldEqual, Loading)

				next := searcher.next()
				So(next.query.Text, ShouldEqual, "predator")
				So(next.query.Page, ShouldEqual, 1)
				next.succeed(page("p", 1, 1))
			})
		})
	})
}

func TestEndReached(t *testing.T) {
	Convey("Given a controller", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard)
		defer controller.Close()

		Convey("End of an empty list is a no-op", func() {
			wait(controller.OnEndReached())
			So(searcher.idle(), ShouldBeTrue)
			So(controller.Snapshot().State, ShouldEqual, Idle)
		})

		Convey("End of the list while loading is a no-op", func() {
			controller.OnQueryChanged("alien")
			first := searcher.next()

			wait(controller.OnEndReached())
			So(searcher.idle(), ShouldBeTrue)

			first.succeed(page("a", 10, 30))
		})

		Convey("With the first page loaded", func() {
			done := controller.OnQueryChanged("alien")
			searcher.next().succeed(page("a", 10, 25))
			wait(done)

			Convey("The next pages are appended", func() {
				done := controller.OnEndReached()
				c := searcher.next()
				So(c.query.Page, ShouldEqual, 2)
				So(c.query.Text, ShouldEqual, "alien")
				c.succeed(page("b", 10, 25))
				wait(done)

				snapshot := controller.Snapshot()
				So(snapshot.Items, ShouldHaveLength, 20)
				So(snapshot.Items[0].ID, ShouldEqual, "a0")
				So(snapshot.Items[10].ID, ShouldEqual, "b0")
				So(snapshot.Page, ShouldEqual, 2)

				done = controller.OnEndReached()
				searcher.next().succeed(page("c", 5, 25))
				wait(done)

				snapshot = controller.Snapshot()
				So(snapshot.Items, ShouldHaveLength, 25)
				So(snapshot.Page, ShouldEqual, 3)
				So(snapshot.TotalPages, ShouldEqual, 3)

				Convey("And the last page stops pagination", func() {
					wait(controller.OnEndReached())
					So(searcher.idle(), ShouldBeTrue)
				})
			})

			Convey("A failed page keeps the loaded items and the upstream message", func() {
				notices := &notices{}
				controller.notifier = notices

				done := controller.OnEndReached()
				searcher.next().fail(&omdb.SearchFailedError{Message: "Too many results."})
				wait(done)

				snapshot := controller.Snapshot()
				So(snapshot.State, ShouldEqual, Error)
				So(snapshot.Items, ShouldHaveLength, 10)
				So(snapshot.Page, ShouldEqual, 1)
				So(snapshot.Err.Error(), ShouldEqual, "Too many results.")

				shown := notices.all()
				So(shown, ShouldHaveLength, 1)
				So(shown[0].Message, ShouldEqual, "Too many results.")
				So(shown[0].Variant, ShouldEqual, notify.Error)

				Convey("And reaching the end again asks for the same page", func() {
					done := controller.OnEndReached()
					c := searcher.next()
					So(c.query.Page, ShouldEqual, 2)
					c.succeed(page("b", 10, 25))
					wait(done)

					snapshot := controller.Snapshot()
					So(snapshot.State, ShouldEqual, Loaded)
					So(snapshot.Items, ShouldHaveLength, 20)
					So(snapshot.Err, ShouldBeNil)
				})

				Convey("And Retry re-issues it", func() {
					done := controller.Retry()
					c := searcher.next()
					So(c.query.Page, ShouldEqual, 2)
					c.succeed(page("b", 10, 25))
					wait(done)

					So(controller.Snapshot().Items, ShouldHaveLength, 20)
				})
			})
		})
	})
}

func TestFilterApplied(t *testing.T) {
	Convey("Given a controller with two loaded pages", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard)
		defer controller.Close()

		filters := omdb.Filters{StartYear: "1979", Type: omdb.Movie}
		_, err := controller.OnFilterApplied(filters)
		So(err, ShouldBeNil)

		done := controller.OnQueryChanged("alien")
		first := searcher.next()
		So(first.query.Filters, ShouldResemble, filters)
		first.succeed(page("a", 10, 30))
		wait(done)

		done = controller.OnEndReached()
		searcher.next().succeed(page("b", 10, 30))
		wait(done)
		So(controller.Snapshot().Items, ShouldHaveLength, 20)

		Convey("Applying identical filters still restarts from page 1", func() {
			done, err := controller.OnFilterApplied(filters)
			So(err, ShouldBeNil)

			snapshot := controller.Snapshot()
			So(snapshot.Items, ShouldBeEmpty)
			So(snapshot.Page, ShouldEqual, 1)
			So(snapshot.State, ShouldEqual, Loading)

			c := searcher.next()
			So(c.query.Page, ShouldEqual, 1)
			So(c.query.Text, ShouldEqual, "alien")
			c.succeed(page("c", 3, 3))
			wait(done)

			So(controller.Snapshot().Items, ShouldHaveLength, 3)
		})

		Convey("Invalid filters are rejected without any change", func() {
			for _, invalid := range []omdb.Filters{
				{StartYear: "79"},
				{StartYear: "abcd"},
				{StartYear: "2000", EndYear: "1990"},
				{Type: "documentary"},
			} {
				_, err := controller.OnFilterApplied(invalid)
				So(err, ShouldNotBeNil)
			}

			So(searcher.idle(), ShouldBeTrue)
			snapshot := controller.Snapshot()
			So(snapshot.Items, ShouldHaveLength, 20)
			So(snapshot.Filters, ShouldResemble, filters)
		})

		Convey("Applying filters with blank input clears the list without searching", func() {
			wait(controller.OnQueryChanged("  "))
			done, err := controller.OnFilterApplied(omdb.Filters{Type: omdb.Series})
			So(err, ShouldBeNil)
			wait(done)

			So(searcher.idle(), ShouldBeTrue)
			snapshot := controller.Snapshot()
			So(snapshot.State, ShouldEqual, Idle)
			So(snapshot.Items, ShouldBeEmpty)
			So(snapshot.Filters.Type, ShouldEqual, omdb.Series)
		})
	})
}

func TestStaleResults(t *testing.T) {
	Convey("Given a superseded request", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard)
		defer controller.Close()

		staleDone := controller.OnQueryChanged("alien")
		stale := searcher.next()

		freshDone := controller.OnQueryChanged("aliens")
		fresh := searcher.next()

		Convey("Its context is cancelled", func() {
			So(stale.ctx.Err(), ShouldNotBeNil)
			So(fresh.ctx.Err(), ShouldBeNil)

			stale.fail(context.Canceled)
			fresh.succeed(page("f", 1, 1))
		})

		Convey("Its late answer does not touch the newer state", func() {
			fresh.succeed(page("fresh", 3, 3))
			wait(freshDone)

			stale.succeed(page("stale", 10, 95))
			wait(staleDone)

			snapshot := controller.Snapshot()
			So(snapshot.State, ShouldEqual, Loaded)
			So(snapshot.Items, ShouldHaveLength, 3)
			So(snapshot.Items[0].ID, ShouldEqual, "fresh0")
			So(snapshot.Page, ShouldEqual, 1)
			So(snapshot.TotalPages, ShouldEqual, 1)
		})

		Convey("Its late failure raises no notice", func() {
			notices := &notices{}
			controller.notifier = notices

			stale.fail(&omdb.TransportError{Err: errors.New("boom")})
			wait(staleDone)

			So(notices.all(), ShouldBeEmpty)
			So(controller.Snapshot().State, ShouldEqual, Loading)

			fresh.succeed(page("f", 1, 1))
			wait(freshDone)
		})
	})
}

func TestFailures(t *testing.T) {
	Convey("Given a controller", t, func() {
		searcher := newFakeSearcher()
		notices := &notices{}
		controller := New(searcher, notices)
		defer controller.Close()

		Convey("An unreachable service surfaces a fixed message", func() {
			done := controller.OnQueryChanged("alien")
			searcher.next().fail(&omdb.TransportError{Err: errors.New("connection refused")})
			wait(done)

			snapshot := controller.Snapshot()
			So(snapshot.State, ShouldEqual, Error)
			So(errors.Is(snapshot.Err, omdb.ErrTransport), ShouldBeTrue)
			So(notices.all()[0].Message, ShouldEqual, "Could not reach the movie service")

			Convey("And the same text searches again", func() {
				done := controller.OnQueryChanged("alien")
				searcher.next().succeed(page("a", 2, 2))
				wait(done)
				So(controller.Snapshot().State, ShouldEqual, Loaded)
			})
		})

		Convey("No results surface the upstream message", func() {
			done := controller.OnQueryChanged("zzzzzz")
			searcher.next().fail(&omdb.SearchFailedError{Message: "Movie not found!"})
			wait(done)

			So(controller.Snapshot().Items, ShouldBeEmpty)
			So(notices.all()[0].Message, ShouldEqual, "Movie not found!")
		})

		Convey("Retry without a failure is a no-op", func() {
			wait(controller.Retry())
			So(searcher.idle(), ShouldBeTrue)
		})
	})
}

func TestTimeout(t *testing.T) {
	Convey("Given a controller with a short timeout", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard, WithTimeout(20*time.Millisecond))
		defer controller.Close()

		controller.OnQueryChanged("alien")
		c := searcher.next()

		<-c.ctx.Done()
		So(errors.Is(c.ctx.Err(), context.DeadlineExceeded), ShouldBeTrue)
		c.fail(&omdb.TransportError{Err: c.ctx.Err()})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a controller with a request in flight", t, func() {
		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard)

		done := controller.OnQueryChanged("alien")
		c := searcher.next()

		controller.Close()

		Convey("The request is cancelled and its answer dropped", func() {
			So(c.ctx.Err(), ShouldNotBeNil)

			c.succeed(page("a", 10, 95))
			wait(done)
			So(controller.Snapshot().Items, ShouldBeEmpty)
		})

		Convey("Further triggers do nothing", func() {
			c.fail(context.Canceled)
			wait(done)

			wait(controller.OnQueryChanged("predator"))
			wait(controller.OnEndReached())
			_, err := controller.OnFilterApplied(omdb.Filters{})
			So(err, ShouldBeNil)
			So(searcher.idle(), ShouldBeTrue)

			controller.Close()
		})
	})
}

func TestObservers(t *testing.T) {
	Convey("Given an observed controller", t, func() {
		var (
			mu        sync.Mutex
			revisions []uint64
			states    []State
		)

		searcher := newFakeSearcher()
		controller := New(searcher, notify.Discard, WithObserver(func(s Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			revisions = append(revisions, s.Revision)
			states = append(states, s.State)
		}))
		defer controller.Close()

		done := controller.OnQueryChanged("alien")
		searcher.next().succeed(page("a", 10, 20))
		wait(done)

		done = controller.OnEndReached()
		searcher.next().succeed(page("b", 10, 20))
		wait(done)

		mu.Lock()
		defer mu.Unlock()

		Convey("Snapshots arrive in revision order", func() {
			So(revisions, ShouldNotBeEmpty)
			for i := 1; i < len(revisions); i++ {
				So(revisions[i], ShouldBeGreaterThan, revisions[i-1])
			}
			So(states[len(states)-1], ShouldEqual, Loaded)
		})
	})
}
