package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cinedex/cinedex/favorites"
	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/search"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeClient struct{}

func (fakeClient) SearchMovies(_ context.Context, q omdb.Query) (*omdb.Page, error) {
	return &omdb.Page{
		Items: []omdb.Item{
			{ID: "tt0078748", Title: "Alien", Year: "1979", Type: omdb.Movie},
			{ID: "tt0090605", Title: "Aliens", Year: "1986", Type: omdb.Movie},
		},
		TotalCount: 2,
	}, nil
}

func (fakeClient) GetMovieDetails(_ context.Context, id string) (*omdb.Details, error) {
	return &omdb.Details{
		ID:    id,
		Title: "Alien",
		Year:  "1979",
		Type:  omdb.Movie,
		Plot:  "The crew of a commercial spacecraft encounters a deadly lifeform after investigating an unknown transmission.",
	}, nil
}

// pagedClient serves a full first page and fails every later one.
type pagedClient struct {
	fakeClient
	calls atomic.Int32
}

func (c *pagedClient) SearchMovies(_ context.Context, q omdb.Query) (*omdb.Page, error) {
	c.calls.Add(1)
	if q.Page > 1 {
		return nil, errors.New("connection reset")
	}

	items := make([]omdb.Item, 10)
	for i := range items {
		items[i] = omdb.Item{ID: fmt.Sprintf("tt%07d", i+1), Title: fmt.Sprintf("Alien %d", i+1), Type: omdb.Movie}
	}
	return &omdb.Page{Items: items, TotalCount: 30}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func waitForState(b *statefulBubble, want search.State) search.Snapshot {
	deadline := time.After(time.Second)
	for {
		select {
		case snapshot := <-b.snapshotChannel:
			if snapshot.State == want {
				return snapshot
			}
		case <-deadline:
			panic("controller did not reach " + want.String())
		}
	}
}

func TestBubble(t *testing.T) {
	Convey("Given a TUI session", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := favorites.New(kv.NewMemory())
		b := newBubble(ctx, fakeClient{}, store, &Options{})
		b.resize(100, 40)
		defer b.close()

		Convey("A settled query fills the results", func() {
			b.Update(settledQueryMsg("alien"))
			b.Update(waitForState(b, search.Loaded))

			So(b.resultsC.Items(), ShouldHaveLength, 2)
			So(b.View(), ShouldContainSubstring, "Alien")

			Convey("And favorites are marked", func() {
				b.Update(favoriteIDsMsg{"tt0090605"})

				items := b.resultsC.Items()
				So(items[0].(*listItem).marked, ShouldBeFalse)
				So(items[1].(*listItem).marked, ShouldBeTrue)
			})
		})

		Convey("A blank settled query leaves the controller idle", func() {
			b.Update(settledQueryMsg("   "))
			So(b.controller.Snapshot().State, ShouldEqual, search.Idle)
			So(b.resultsC.Items(), ShouldBeEmpty)
		})

		Convey("The filter panel toggles the type", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
			So(b.state, ShouldEqual, filterState)

			b.Update(tea.KeyMsg{Type: tea.KeyTab})
			b.Update(tea.KeyMsg{Type: tea.KeyTab})
			So(b.filterField, ShouldEqual, fieldType)

			b.Update(keyRunes("2"))
			So(b.filterType, ShouldEqual, omdb.Series)

			b.Update(keyRunes("2"))
			So(b.filterType, ShouldEqual, omdb.Type(""))

			Convey("And esc closes it without applying", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, searchState)
				So(b.controller.Snapshot().Filters.IsZero(), ShouldBeTrue)
			})
		})

		Convey("The details screen toggles the favorite", func() {
			details, _ := fakeClient{}.GetMovieDetails(ctx, "tt0078748")
			b.newState(detailsState)
			b.Update(detailsLoadedMsg{details: details})

			So(b.View(), ShouldContainSubstring, "not in favorites")
			So(b.View(), ShouldContainSubstring, "commercial spacecraft")

			cmd := b.updateDetails(keyRunes("f"))
			So(cmd, ShouldNotBeNil)
			b.Update(cmd())

			So(b.selectedFav, ShouldBeTrue)
			So(store.IsFavorite(ctx, "tt0078748"), ShouldBeTrue)

			Convey("And o is bound to the IMDb page", func() {
				So(b.keymap.openPage.Enabled(), ShouldBeTrue)
				So(b.keymap.openPage.Keys(), ShouldContain, "o")
			})

			Convey("And esc goes back to search", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, searchState)
			})
		})
	})
}

func TestEndOfResults(t *testing.T) {
	Convey("Given results whose second page fails", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		client := &pagedClient{}
		b := newBubble(ctx, client, favorites.New(kv.NewMemory()), &Options{})
		b.resize(100, 40)
		defer b.close()

		b.Update(settledQueryMsg("alien"))
		b.Update(waitForState(b, search.Loaded))
		So(b.resultsC.Items(), ShouldHaveLength, 10)

		b.focusResults()
		b.Update(keyRunes("G"))
		b.Update(waitForState(b, search.Error))
		So(client.calls.Load(), ShouldEqual, 2)
		So(b.resultsC.Index(), ShouldEqual, 9)

		Convey("Messages other than keys request nothing", func() {
			for range 3 {
				b.Update(notify.NoticeMsg{Message: "connection reset"})
			}
			b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
			time.Sleep(50 * time.Millisecond)

			So(client.calls.Load(), ShouldEqual, 2)
			So(b.controller.Snapshot().State, ShouldEqual, search.Error)
		})

		Convey("Pressing down on the last row asks again", func() {
			b.Update(keyRunes("j"))
			b.Update(waitForState(b, search.Error))
			So(client.calls.Load(), ShouldEqual, 3)
		})

		Convey("Moving up does not", func() {
			b.Update(keyRunes("k"))
			time.Sleep(50 * time.Millisecond)
			So(client.calls.Load(), ShouldEqual, 2)
		})
	})
}

func TestNextType(t *testing.T) {
	Convey("Types cycle back to none", t, func() {
		So(nextType(""), ShouldEqual, omdb.Movie)
		So(nextType(omdb.Movie), ShouldEqual, omdb.Series)
		So(nextType(omdb.Series), ShouldEqual, omdb.Episode)
		So(nextType(omdb.Episode), ShouldEqual, omdb.Type(""))
	})
}
