package tui

import (
	"strings"

	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/query"
	"github.com/cinedex/cinedex/search"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case settledQueryMsg:
		b.submitQuery(string(msg))
		return b, tea.Batch(append(cmds, b.waitForQuery())...)
	case search.Snapshot:
		cmds = append(cmds, b.onSnapshot(msg), b.waitForSnapshot())
		return b, tea.Batch(cmds...)
	case spinner.TickMsg:
		if !b.busy() {
			b.spinning = false
			return b, tea.Batch(cmds...)
		}

		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case favoriteIDsMsg:
		b.favoriteIDs = lo.SliceToMap(msg, func(id string) (string, struct{}) {
			return id, struct{}{}
		})
		b.remark()
		return b, tea.Batch(cmds...)
	case favoriteToggledMsg:
		if msg.added {
			b.favoriteIDs[msg.id] = struct{}{}
			b.notifier.ShowNotice("Added to favorites", notify.Options{Variant: notify.Success})
		} else {
			delete(b.favoriteIDs, msg.id)
			b.notifier.ShowNotice("Removed from favorites", notify.Options{})
		}

		if selected, ok := b.selected.Get(); ok && selected.ID == msg.id {
			b.selectedFav = msg.added
		}
		b.remark()

		if b.state == favoritesState {
			cmds = append(cmds, b.loadFavorites())
		}
		return b, tea.Batch(cmds...)
	case filterSettledMsg:
		b.filterBusy = false
		if b.state == filterState {
			b.previousState()
		}
		return b, tea.Batch(cmds...)
	case detailsLoadedMsg:
		b.loadingLabel = ""
		b.selected = mo.Some(msg.details)
		b.selectedFav = msg.favorite
		return b, tea.Batch(cmds...)
	case detailsFailedMsg:
		b.loadingLabel = ""
		b.notifier.ShowNotice(omdb.Message(msg.err), notify.Options{Variant: notify.Error})
		if b.state == detailsState {
			b.previousState()
		}
		return b, tea.Batch(cmds...)
	case favoritesLoadedMsg:
		b.loadingLabel = ""
		if msg.refreshed || len(b.favoritesC.Items()) != len(msg.details) {
			items := lo.Map(msg.details, func(d *omdb.Details, _ int) list.Item {
				return &listItem{internal: d, marked: true}
			})
			cmds = append(cmds, b.favoritesC.SetItems(items))
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case searchState:
		cmd = b.updateSearch(msg)
	case filterState:
		cmd = b.updateFilter(msg)
	case detailsState:
		cmd = b.updateDetails(msg)
	case favoritesState:
		cmd = b.updateFavorites(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.openFilter):
			b.loadFilterPanel(b.snapshot.Filters)
			b.newState(filterState)
			return textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.openFavorites):
			b.newState(favoritesState)
			return b.loadFavorites()
		case bubblesKey.Matches(msg, b.keymap.retry):
			b.controller.Retry()
			return nil
		}
	}

	if b.listFocused {
		return b.updateResults(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.inputC.CursorEnd()
			b.searchSuggestion = mo.None[string]()
			b.debouncer.Push(b.inputC.Value())
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			// enter skips the quiet period
			b.debouncer.Cancel()
			b.submitQuery(b.inputC.Value())
			if len(b.resultsC.Items()) > 0 {
				b.focusResults()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.focusList) && len(b.resultsC.Items()) > 0:
			b.focusResults()
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.inputC.Value() == "" {
				return nil
			}
			b.inputC.SetValue("")
			b.searchSuggestion = mo.None[string]()
			b.debouncer.Push("")
			return nil
		}
	}

	before := b.inputC.Value()

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != before {
		b.debouncer.Push(value)
		b.suggest(value)
	}

	return cmd
}

func (b *statefulBubble) suggest(value string) {
	if strings.TrimSpace(value) == "" {
		b.searchSuggestion = mo.None[string]()
		return
	}

	if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != strings.ToLower(strings.TrimSpace(value)) {
		b.searchSuggestion = mo.Some(suggestion)
	} else {
		b.searchSuggestion = mo.None[string]()
	}
}

func (b *statefulBubble) focusResults() {
	b.listFocused = true
	b.inputC.Blur()
}

func (b *statefulBubble) focusInput() tea.Cmd {
	b.listFocused = false
	b.inputC.Focus()
	return textinput.Blink
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.resultsC.SelectedItem().(*listItem); ok {
				return b.loadDetails(item.item().ID)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.focusInput), bubblesKey.Matches(msg, b.keymap.back):
			return b.focusInput()
		case bubblesKey.Matches(msg, b.keymap.up) && b.resultsC.Index() == 0:
			return b.focusInput()
		case bubblesKey.Matches(msg, b.keymap.toggleFavorite):
			if item, ok := b.resultsC.SelectedItem().(*listItem); ok {
				return b.toggleFavorite(item.item().ID)
			}
			return nil
		}
	}

	before := b.resultsC.Index()

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)

	if msg, ok := msg.(tea.KeyMsg); ok && b.reachedEnd(msg, before) {
		b.controller.OnEndReached()
	}

	return cmd
}

// reachedEnd reports whether a key press moved onto the last result,
// or pushed further down while already there.
func (b *statefulBubble) reachedEnd(msg tea.KeyMsg, before int) bool {
	n := len(b.resultsC.Items())
	if n == 0 || b.resultsC.Index() != n-1 {
		return false
	}

	return before != n-1 || bubblesKey.Matches(msg, b.keymap.down, b.keymap.bottom, b.keymap.right)
}

func (b *statefulBubble) updateFilter(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if b.filterBusy {
			return nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b.applyFilters()
		case bubblesKey.Matches(msg, b.keymap.clearFilters):
			b.loadFilterPanel(omdb.Filters{})
			return nil
		case bubblesKey.Matches(msg, b.keymap.nextField):
			b.filterField = (b.filterField + 1) % fieldCount
			b.focusFilterField()
			return textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.prevField):
			b.filterField = (b.filterField + fieldCount - 1) % fieldCount
			b.focusFilterField()
			return textinput.Blink
		case b.filterField == fieldType && bubblesKey.Matches(msg, b.keymap.pickType):
			t := omdb.Types[msg.Runes[0]-'1']
			b.filterType = omdb.Filters{Type: b.filterType}.ToggleType(t).Type
			return nil
		case b.filterField == fieldType && bubblesKey.Matches(msg, b.keymap.cycleType):
			b.filterType = nextType(b.filterType)
			return nil
		}
	}

	var cmd tea.Cmd
	switch b.filterField {
	case fieldStartYear:
		b.startYearC, cmd = b.startYearC.Update(msg)
	case fieldEndYear:
		b.endYearC, cmd = b.endYearC.Update(msg)
	}

	return cmd
}

// nextType cycles through every type and then back to none.
func nextType(t omdb.Type) omdb.Type {
	if t == "" {
		return omdb.Types[0]
	}

	_, i, ok := lo.FindIndexOf(omdb.Types, func(other omdb.Type) bool { return other == t })
	if !ok || i == len(omdb.Types)-1 {
		return ""
	}
	return omdb.Types[i+1]
}

func (b *statefulBubble) updateDetails(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.selected = noDetails()
			b.loadingLabel = ""
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.toggleFavorite):
			if selected, ok := b.selected.Get(); ok {
				return b.toggleFavorite(selected.ID)
			}
		case bubblesKey.Matches(msg, b.keymap.openPage):
			if selected, ok := b.selected.Get(); ok {
				return b.openPage(selected)
			}
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		}
	}

	return nil
}

func (b *statefulBubble) updateFavorites(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.favoritesC.ResetSelected()
			if b.statesHistory.Len() == 0 {
				b.setState(searchState)
				return b.focusInput()
			}
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.favoritesC.SelectedItem().(*listItem); ok {
				return b.loadDetails(item.item().ID)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.remove):
			if item, ok := b.favoritesC.SelectedItem().(*listItem); ok {
				return b.removeFavorite(item.item().ID)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.favoritesC, cmd = b.favoritesC.Update(msg)
	return cmd
}
