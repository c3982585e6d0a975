package tui

import (
	"fmt"
	"strings"

	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/search"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case searchState:
		output = b.viewSearch()
	case filterState:
		output = b.viewFilter()
	case detailsState:
		output = b.viewDetails()
	case favoritesState:
		output = b.viewFavorites()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewSearch() string {
	header := style.Title("Search")
	if tags := filterTags(b.snapshot.Filters); tags != "" {
		header += " " + tags
	}
	if b.snapshot.State == search.Loading {
		header += " " + b.spinnerC.View()
	}

	input := b.inputC.View()
	if suggestion, ok := b.searchSuggestion.Get(); ok {
		input += "  " + style.Faint("tab: "+suggestion)
	}

	lines := []string{header, "", input}

	if len(b.resultsC.Items()) > 0 {
		b.resultsC.Title = b.resultsTitle()
		return paddingStyle.Render(strings.Join(lines, "\n")) + "\n" +
			listExtraPaddingStyle.Render(b.resultsC.View())
	}

	lines = append(lines, "", b.searchStatus())
	return b.renderLines(true, lines)
}

func (b *statefulBubble) resultsTitle() string {
	s := b.snapshot
	title := fmt.Sprintf("%s for %q", util.Quantify(len(s.Items), "result", "results"), s.Query)
	if s.TotalPages > 1 {
		title += fmt.Sprintf(" · page %d/%d", s.Page, s.TotalPages)
	}
	return title
}

func (b *statefulBubble) searchStatus() string {
	switch b.snapshot.State {
	case search.Loading:
		return b.spinnerC.View() + " Searching for " + style.Fg(style.AccentColor)(b.snapshot.Query)
	case search.Error:
		return style.Fail(wrap.String(omdb.Message(b.snapshot.Err), b.width))
	case search.Loaded:
		return style.Faint("No results")
	default:
		return style.Faint("Type a title to search")
	}
}

func filterTags(filters omdb.Filters) string {
	var tags []string

	if y, ok := filters.YearExpression().Get(); ok {
		tags = append(tags, style.Tag(style.Base, style.Peach)(y))
	}
	if filters.Type != "" {
		tags = append(tags, style.Tag(style.Base, style.Mint)(util.Capitalize(string(filters.Type))))
	}

	return strings.Join(tags, " ")
}

func (b *statefulBubble) viewFilter() string {
	label := func(field int, s string) string {
		if b.filterField == field {
			return style.Fg(style.AccentColor)(s)
		}
		return s
	}

	types := make([]string, 0, len(omdb.Types))
	for i, t := range omdb.Types {
		name := fmt.Sprintf("%d %s", i+1, util.Capitalize(string(t)))
		if t == b.filterType {
			types = append(types, style.Tag(style.Base, style.AccentColor)(name))
		} else {
			types = append(types, style.Faint(name))
		}
	}

	lines := []string{
		style.Title("Filters"),
		"",
		b.startYearC.View(),
		b.endYearC.View(),
		label(fieldType, "Type: ") + strings.Join(types, " "),
		"",
	}

	if b.filterBusy {
		lines = append(lines, b.spinnerC.View()+" Applying")
	} else {
		lines = append(lines, style.Faint("Years are optional. Picking the selected type again clears it."))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewDetails() string {
	details, ok := b.selected.Get()
	if !ok {
		return b.renderLines(true, []string{
			style.Title("Details"),
			"",
			b.spinnerC.View() + " " + b.loadingLabel,
		})
	}

	mark := style.Faint(style.GlyphEmpty + " not in favorites")
	if b.selectedFav {
		mark = style.Fg(style.Gold)(style.GlyphStar + " favorite")
	}

	meta := []string{details.Year, util.Capitalize(string(details.Type))}
	for _, s := range []string{details.Rated, details.Runtime, details.Genre} {
		if s != "" && s != "N/A" {
			meta = append(meta, s)
		}
	}

	lines := []string{
		style.Title(details.Title) + " " + mark,
		style.Faint(strings.Join(meta, " "+style.GlyphInfo+" ")),
		"",
	}

	field := func(name, value string) {
		if value == "" || value == "N/A" {
			return
		}
		lines = append(lines, style.Bold(name+": ")+value)
	}

	field("Director", details.Director)
	field("Writer", details.Writer)
	field("Actors", details.Actors)
	field("Released", details.Released)
	field("Awards", details.Awards)

	for _, rating := range details.Ratings {
		field(rating.Source, rating.Value)
	}

	if viper.GetBool(key.TUIShowPosters) {
		if poster, ok := details.Item().PosterURL().Get(); ok {
			field("Poster", poster)
		}
	}

	if details.Plot != "" && details.Plot != "N/A" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(wordwrap.String(details.Plot, max(b.width, 20)), "\n")...)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewFavorites() string {
	if b.loadingLabel != "" && len(b.favoritesC.Items()) == 0 {
		return b.renderLines(true, []string{
			style.Title("Favorites"),
			"",
			b.spinnerC.View() + " " + b.loadingLabel,
		})
	}

	b.favoritesC.Title = "Favorites"
	if b.loadingLabel != "" {
		b.favoritesC.Title += " " + b.spinnerC.View()
	}

	return listExtraPaddingStyle.Render(b.favoritesC.View())
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
