package tui

import (
	"strings"

	"github.com/cinedex/cinedex/history"
	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/open"
	"github.com/cinedex/cinedex/query"
	"github.com/cinedex/cinedex/search"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type settledQueryMsg string

type filterSettledMsg struct{}

type detailsLoadedMsg struct {
	details  *omdb.Details
	favorite bool
}

type detailsFailedMsg struct {
	err error
}

type favoritesLoadedMsg struct {
	details   []*omdb.Details
	refreshed bool
}

type favoriteIDsMsg []string

type favoriteToggledMsg struct {
	id    string
	added bool
}

// waitForQuery delivers the next text the debouncer settled on.
func (b *statefulBubble) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		text, ok := <-b.debouncer.Values()
		if !ok {
			return nil
		}
		return settledQueryMsg(text)
	}
}

// waitForSnapshot delivers the controller's latest state.
func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		select {
		case snapshot := <-b.snapshotChannel:
			return snapshot
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) submitQuery(text string) {
	b.controller.OnQueryChanged(text)

	if strings.TrimSpace(text) != "" {
		go func() {
			if err := query.Remember(text, 1); err != nil {
				log.Warn(err)
			}
		}()
	}
}

func (b *statefulBubble) applyFilters() tea.Cmd {
	filters := omdb.Filters{
		StartYear: strings.TrimSpace(b.startYearC.Value()),
		EndYear:   strings.TrimSpace(b.endYearC.Value()),
		Type:      b.filterType,
	}

	done, err := b.controller.OnFilterApplied(filters)
	if err != nil {
		b.notifier.ShowNotice(err.Error(), notify.Options{Variant: notify.Error})
		return nil
	}

	b.filterBusy = true
	return tea.Batch(b.startSpinner(), func() tea.Msg {
		<-done
		return filterSettledMsg{}
	})
}

// loadFilterPanel copies the applied filters into the panel inputs.
func (b *statefulBubble) loadFilterPanel(filters omdb.Filters) {
	b.startYearC.SetValue(filters.StartYear)
	b.endYearC.SetValue(filters.EndYear)
	b.filterType = filters.Type
	b.filterField = fieldStartYear
	b.focusFilterField()
}

func (b *statefulBubble) focusFilterField() {
	b.startYearC.Blur()
	b.endYearC.Blur()

	switch b.filterField {
	case fieldStartYear:
		b.startYearC.Focus()
	case fieldEndYear:
		b.endYearC.Focus()
	}
}

func (b *statefulBubble) loadDetails(id string) tea.Cmd {
	b.selected = noDetails()
	b.loadingLabel = "Loading " + id
	b.newState(detailsState)

	return tea.Batch(b.startSpinner(), func() tea.Msg {
		details, err := b.client.GetMovieDetails(b.ctx, id)
		if err != nil {
			log.WithFields(log.Fields{"id": id, "error": err}).Error("loading details failed")
			return detailsFailedMsg{err: err}
		}

		if err := history.Save(details); err != nil {
			log.WithFields(log.Fields{"id": id, "error": err}).Warn("saving to history failed")
		}

		return detailsLoadedMsg{
			details:  details,
			favorite: b.favorites.IsFavorite(b.ctx, id),
		}
	})
}

func (b *statefulBubble) openPage(details *omdb.Details) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(details.URL()); err != nil {
			log.WithFields(log.Fields{"id": details.ID, "error": err}).Error("opening page failed")
			b.notifier.ShowNotice("Could not open "+details.URL(), notify.Options{Variant: notify.Error})
			return nil
		}

		b.notifier.ShowNotice("Opened "+details.Title+" in the browser", notify.Options{})
		return nil
	}
}

func (b *statefulBubble) toggleFavorite(id string) tea.Cmd {
	return func() tea.Msg {
		added, err := b.favorites.Toggle(b.ctx, id)
		if err != nil {
			b.notifier.ShowNotice("Could not update favorites", notify.Options{Variant: notify.Error})
			return nil
		}
		return favoriteToggledMsg{id: id, added: added}
	}
}

func (b *statefulBubble) removeFavorite(id string) tea.Cmd {
	return func() tea.Msg {
		if err := b.favorites.Remove(b.ctx, id); err != nil {
			b.notifier.ShowNotice("Could not update favorites", notify.Options{Variant: notify.Error})
			return nil
		}
		return favoriteToggledMsg{id: id, added: false}
	}
}

func (b *statefulBubble) loadFavorites() tea.Cmd {
	b.loadingLabel = "Loading favorites"

	return tea.Batch(b.startSpinner(), func() tea.Msg {
		details, refreshed := b.loader.Load(b.ctx)
		return favoritesLoadedMsg{details: details, refreshed: refreshed}
	})
}

// startSpinner starts the spinner tick loop unless it is already running.
func (b *statefulBubble) startSpinner() tea.Cmd {
	if b.spinning {
		return nil
	}
	b.spinning = true
	return b.spinnerC.Tick
}

func (b *statefulBubble) busy() bool {
	return b.snapshot.State == search.Loading || b.filterBusy || b.loadingLabel != ""
}

// onSnapshot mirrors the controller state into the results list.
func (b *statefulBubble) onSnapshot(snapshot search.Snapshot) tea.Cmd {
	previous := b.snapshot
	b.snapshot = snapshot

	var cmds []tea.Cmd

	if !sameItems(previous, snapshot) {
		cmds = append(cmds, b.resultsC.SetItems(b.resultItems(snapshot.Items)))
		if len(snapshot.Items) == 0 || snapshot.Page <= 1 && previous.Query != snapshot.Query {
			b.resultsC.ResetSelected()
		}
	}

	if snapshot.State == search.Loading {
		cmds = append(cmds, b.startSpinner())
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) resultItems(items []omdb.Item) []list.Item {
	return lo.Map(items, func(item omdb.Item, _ int) list.Item {
		_, marked := b.favoriteIDs[item.ID]
		return &listItem{internal: item, marked: marked}
	})
}

// remark refreshes favorite marks in the results list.
func (b *statefulBubble) remark() {
	for _, it := range b.resultsC.Items() {
		item := it.(*listItem)
		_, item.marked = b.favoriteIDs[item.item().ID]
	}
}

func (b *statefulBubble) loadFavoriteIDs() tea.Cmd {
	return func() tea.Msg {
		return favoriteIDsMsg(b.favorites.List(b.ctx))
	}
}

func sameItems(a, b search.Snapshot) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i].ID != b.Items[i].ID {
			return false
		}
	}
	return true
}

func noDetails() mo.Option[*omdb.Details] {
	return mo.None[*omdb.Details]()
}
