// Package tui is the interactive movie browser.
package tui

import (
	"context"

	"github.com/cinedex/cinedex/favorites"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/omdb"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Options tune a TUI session.
type Options struct {
	// Query is searched right away when not blank.
	Query string
	// Favorites opens the favorites screen first.
	Favorites bool
}

// Client is what the TUI needs from the movie API.
type Client interface {
	SearchMovies(ctx context.Context, q omdb.Query) (*omdb.Page, error)
	GetMovieDetails(ctx context.Context, id string) (*omdb.Details, error)
}

// Run opens the configured storage and starts the program.
func Run(options *Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := kv.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	bubble := newBubble(ctx, omdb.FromConfig(), favorites.New(store), options)
	defer bubble.close()

	if options.Favorites {
		bubble.newState(favoritesState)
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

func detailsConcurrency() int {
	return max(viper.GetInt(key.FavoritesDetailsConcurrency), 1)
}
