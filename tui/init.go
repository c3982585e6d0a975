package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		b.waitForQuery(),
		b.waitForSnapshot(),
		b.notifier.Wait(),
		b.loadFavoriteIDs(),
	}

	if b.options != nil && b.options.Query != "" {
		b.submitQuery(b.options.Query)
	}

	if b.state == favoritesState {
		cmds = append(cmds, b.loadFavorites())
	}

	return tea.Batch(cmds...)
}
