package tui

import (
	"strings"

	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// listItem wraps a search hit or a favorite's details for the list component.
type listItem struct {
	internal any
	marked   bool
}

func (t *listItem) item() omdb.Item {
	switch e := t.internal.(type) {
	case omdb.Item:
		return e
	case *omdb.Details:
		return e.Item()
	default:
		return omdb.Item{}
	}
}

func (t *listItem) Title() string {
	title := t.item().Title
	if title != "" && t.marked {
		title += " " + lipgloss.NewStyle().Foreground(style.Gold).Render(style.GlyphStar)
	}
	return title
}

func (t *listItem) Description() string {
	var parts []string

	switch e := t.internal.(type) {
	case omdb.Item:
		parts = append(parts, e.Year, util.Capitalize(string(e.Type)), style.Faint(e.ID))
	case *omdb.Details:
		parts = append(parts, e.Year, util.Capitalize(string(e.Type)))
		if e.Runtime != "" && e.Runtime != "N/A" {
			parts = append(parts, e.Runtime)
		}
		if e.IMDbRating != "" && e.IMDbRating != "N/A" {
			parts = append(parts, style.Fg(style.Gold)(style.GlyphStar+" "+e.IMDbRating))
		}
	}

	return strings.Join(lo.Compact(parts), " "+style.GlyphInfo+" ")
}

func (t *listItem) FilterValue() string {
	return t.item().Title
}
