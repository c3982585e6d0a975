package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/query"
	"github.com/cinedex/cinedex/search"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchOutput is what `search --json` prints.
type searchOutput struct {
	Query      string       `json:"query" jsonschema:"description=The searched text."`
	Filters    omdb.Filters `json:"filters" jsonschema:"description=Filters applied to the search."`
	Page       int          `json:"page" jsonschema:"description=Last page fetched."`
	TotalPages int          `json:"totalPages" jsonschema:"description=Number of pages the API reported."`
	Items      []omdb.Item  `json:"items"`
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "Title to search for")
	lo.Must0(searchCmd.MarkFlagRequired("query"))
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("query", completionQueries))

	searchCmd.Flags().StringP("type", "t", "", "Only titles of this type: movie, series or episode")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(omdb.Types, func(t omdb.Type, _ int) string { return string(t) }), cobra.ShellCompDirectiveNoFileComp
	}))

	searchCmd.Flags().String("from", "", "Released in or after this year (YYYY)")
	searchCmd.Flags().String("to", "", "Released in or before this year (YYYY)")
	searchCmd.Flags().IntP("pages", "p", 1, "Number of pages to fetch")
	searchCmd.Flags().BoolP("json", "j", false, "Print the results as JSON")

	searchCmd.AddCommand(searchSchemaCmd)
	searchSchemaCmd.Flags().BoolP("details", "d", false, "Print the schema of `details --json` output instead")
}

var searchCmd = &cobra.Command{
	Use:     "search",
	Short:   "Search titles without opening the browser",
	Example: "  cinedex search -q alien --type movie --from 1979 --to 1986 --pages 2",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			text   = strings.TrimSpace(lo.Must(cmd.Flags().GetString("query")))
			from   = lo.Must(cmd.Flags().GetString("from"))
			to     = lo.Must(cmd.Flags().GetString("to"))
			pages  = lo.Must(cmd.Flags().GetInt("pages"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		if text == "" {
			handleErr(errors.New("query must not be blank"))
		}

		t, err := omdb.ParseType(lo.Must(cmd.Flags().GetString("type")))
		handleErr(err)

		filters := omdb.Filters{StartYear: from, EndYear: to, Type: t}
		handleErr(filters.Validate())

		controller := search.New(omdb.FromConfig(), stderrNotifier, search.WithContext(cmd.Context()))
		defer controller.Close()

		_, err = controller.OnFilterApplied(filters)
		handleErr(err)

		var erase func()
		if !asJson && util.IsTerminal() {
			erase = util.PrintErasable(fmt.Sprintf("%s Searching for %s...", style.GlyphInfo, text))
		}

		<-controller.OnQueryChanged(text)
		for i := 1; i < pages; i++ {
			snapshot := controller.Snapshot()
			if snapshot.State != search.Loaded || !snapshot.HasMore() {
				break
			}
			<-controller.OnEndReached()
		}

		if erase != nil {
			erase()
		}

		snapshot := controller.Snapshot()
		if snapshot.State == search.Error && len(snapshot.Items) == 0 {
			// the notifier already printed the reason
			os.Exit(1)
		}

		if viper.GetBool(key.SearchShowQuerySuggestions) {
			if err := query.Remember(text, 1); err != nil {
				log.Warn(err)
			}
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(searchOutput{
				Query:      snapshot.Query,
				Filters:    snapshot.Filters,
				Page:       snapshot.Page,
				TotalPages: snapshot.TotalPages,
				Items:      snapshot.Items,
			}))
			return
		}

		for _, item := range snapshot.Items {
			cmd.Printf("%s %s %s %s\n",
				style.Bold(item.Title),
				style.Fg(style.Yellow)("("+item.Year+")"),
				style.Faint(string(item.Type)),
				style.Fg(style.Cyan)(item.ID),
			)
		}

		cmd.Println(style.Faint(fmt.Sprintf(
			"%s, page %d of %d",
			util.Quantify(len(snapshot.Items), "result", "results"),
			snapshot.Page,
			snapshot.TotalPages,
		)))
	},
}

var searchSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of `search --json` output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "details", "filters", "rating":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("details")):
			schema = reflector.Reflect(&omdb.Details{})
		default:
			schema = reflector.Reflect(&searchOutput{})
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
