package cmd

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cinedex/cinedex/favorites"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openFavorites opens the configured backend. The returned function closes it.
func openFavorites(ctx context.Context) (*favorites.Store, func()) {
	store, err := kv.Open(ctx)
	handleErr(err)

	return favorites.New(store), func() {
		_ = store.Close()
	}
}

func completionFavorites(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	store, closeStore := openFavorites(cmd.Context())
	defer closeStore()

	return store.List(cmd.Context()), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Short:   "Manage favorite titles",
	Aliases: []string{"fav"},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesListCmd.Flags().BoolP("details", "d", false, "Fetch the details of every favorite")
	favoritesListCmd.Flags().BoolP("json", "j", false, "Print as JSON")
}

var favoritesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List favorites, most recent first",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			withDetails = lo.Must(cmd.Flags().GetBool("details"))
			asJson      = lo.Must(cmd.Flags().GetBool("json"))
		)

		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		ids, err := store.Load(cmd.Context())
		handleErr(err)

		if !withDetails {
			if asJson {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(ids))
				return
			}

			for _, id := range ids {
				cmd.Println(id)
			}
			return
		}

		concurrency := max(viper.GetInt(key.FavoritesDetailsConcurrency), 1)
		details := favorites.LoadDetails(cmd.Context(), omdb.FromConfig(), ids, concurrency)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(details))
			return
		}

		for _, d := range details {
			cmd.Printf("%s %s %s %s\n",
				style.Fg(style.Gold)(style.GlyphStar),
				style.Bold(d.Title),
				style.Fg(style.Yellow)("("+d.Year+")"),
				style.Fg(style.Cyan)(d.ID),
			)
		}

		if skipped := len(ids) - len(details); skipped > 0 {
			stderrNotifier.ShowNotice(util.Quantify(skipped, "favorite", "favorites")+" could not be loaded", notify.Options{})
		}
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd, favoritesCheckCmd, favoritesToggleCmd)
	favoritesRemoveCmd.ValidArgsFunction = completionFavorites
	favoritesToggleCmd.ValidArgsFunction = completionFavorites
	favoritesCheckCmd.ValidArgsFunction = completionFavorites
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add [imdb id]",
	Short: "Add a title to favorites",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := strings.TrimSpace(args[0])

		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		handleErr(store.Add(cmd.Context(), id))
		stderrNotifier.ShowNotice("Added "+id+" to favorites", notify.Options{Variant: notify.Success})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove [imdb id]",
	Short:   "Remove a title from favorites",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := strings.TrimSpace(args[0])

		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		handleErr(store.Remove(cmd.Context(), id))
		stderrNotifier.ShowNotice("Removed "+id+" from favorites", notify.Options{Variant: notify.Success})
	},
}

var favoritesCheckCmd = &cobra.Command{
	Use:   "check [imdb id]",
	Short: "Print whether a title is a favorite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		cmd.Println(store.IsFavorite(cmd.Context(), strings.TrimSpace(args[0])))
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle [imdb id]",
	Short: "Add a title to favorites, or remove it if it is one already",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := strings.TrimSpace(args[0])

		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		added, err := store.Toggle(cmd.Context(), id)
		handleErr(err)

		if added {
			stderrNotifier.ShowNotice("Added "+id+" to favorites", notify.Options{Variant: notify.Success})
		} else {
			stderrNotifier.ShowNotice("Removed "+id+" from favorites", notify.Options{Variant: notify.Success})
		}
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesClearCmd)
	favoritesClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openFavorites(cmd.Context())
		defer closeStore()

		count := len(store.List(cmd.Context()))
		if count == 0 {
			stderrNotifier.ShowNotice("No favorites to clear", notify.Options{})
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Remove " + util.Quantify(count, "favorite", "favorites") + "?",
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(store.Clear(cmd.Context()))
		stderrNotifier.ShowNotice("Cleared "+util.Quantify(count, "favorite", "favorites"), notify.Options{Variant: notify.Success})
	},
}
