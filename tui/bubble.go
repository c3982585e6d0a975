package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/debounce"
	"github.com/cinedex/cinedex/favorites"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/search"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// filter panel fields, in focus order
const (
	fieldStartYear = iota
	fieldEndYear
	fieldType
	fieldCount
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC    spinner.Model
	inputC      textinput.Model
	resultsC    list.Model
	favoritesC  list.Model
	startYearC  textinput.Model
	endYearC    textinput.Model
	helpC       help.Model
	listFocused bool

	ctx        context.Context
	client     Client
	favorites  *favorites.Store
	loader     *favorites.Loader
	controller *search.Controller
	debouncer  *debounce.Debouncer
	notifier   *notify.Model

	snapshotChannel chan search.Snapshot
	snapshot        search.Snapshot
	spinning        bool

	filterType   omdb.Type
	filterField  int
	filterBusy   bool
	favoriteIDs  map[string]struct{}
	selected     mo.Option[*omdb.Details]
	selectedFav  bool
	loadingLabel string

	width, height    int
	searchSuggestion mo.Option[string]

	options *Options
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state for previousState.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	listWidth := width - xx
	listHeight := height - yy

	// the search screen keeps three lines above the results for the title and the input
	b.resultsC.SetSize(listWidth, max(listHeight-3, 1))
	b.resultsC.Help.Width = listWidth

	b.favoritesC.SetSize(listWidth, listHeight)
	b.favoritesC.Help.Width = listWidth

	b.inputC.Width = listWidth
	b.helpC.Width = listWidth
}

// close stops the background work tied to the search screen.
func (b *statefulBubble) close() {
	b.controller.Close()
	b.debouncer.Stop()
}

func newBubble(ctx context.Context, client Client, store *favorites.Store, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	notifier := notify.NewModel()

	bubble := statefulBubble{
		keymap:          keymap,
		ctx:             ctx,
		client:          client,
		favorites:       store,
		loader:          favorites.NewLoader(store, client, detailsConcurrency()),
		debouncer:       debounce.New(time.Duration(viper.GetInt(key.SearchDebounceMs)) * time.Millisecond),
		notifier:        notifier,
		snapshotChannel: make(chan search.Snapshot, 1),
		favoriteIDs:     make(map[string]struct{}),
		options:         options,
	}

	bubble.controller = search.New(client, notifier,
		search.WithContext(ctx),
		search.WithObserver(bubble.publish),
	)

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.White)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search movies and series (v%s)", constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.startYearC = newYearInput("From: ")
	bubble.endYearC = newYearInput("To:   ")

	bubble.resultsC = makeList("Results", &listOptions{
		TitleStyle: mo.Some(style.Colored(style.Base, style.Sapphire).Padding(0, 1)),
	})
	bubble.resultsC.SetStatusBarItemName("title", "titles")
	bubble.resultsC.SetShowHelp(false)

	bubble.favoritesC = makeList("Favorites", &listOptions{
		TitleStyle: mo.Some(style.Colored(style.Base, style.Gold).Padding(0, 1)),
	})
	bubble.favoritesC.SetStatusBarItemName("favorite", "favorites")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()
	if options != nil && options.Query != "" {
		bubble.inputC.SetValue(options.Query)
		bubble.inputC.CursorEnd()
	}

	return &bubble
}

func newYearInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "YYYY"
	input.CharLimit = 4
	input.Width = 6
	input.Validate = func(s string) error {
		if lo.SomeBy([]rune(s), func(r rune) bool { return r < '0' || r > '9' }) {
			return fmt.Errorf("year must be numeric")
		}
		return nil
	}
	return input
}

// publish hands the latest snapshot to the update loop, replacing one that was not picked up yet.
func (b *statefulBubble) publish(snapshot search.Snapshot) {
	select {
	case <-b.snapshotChannel:
	default:
	}
	b.snapshotChannel <- snapshot
}
