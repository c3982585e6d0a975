package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cinedex/cinedex/history"
	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/open"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
	detailsCmd.Flags().BoolP("json", "j", false, "Print the record as JSON")
	detailsCmd.Flags().BoolP("open", "o", false, "Open the IMDb page in the browser")
}

var detailsCmd = &cobra.Command{
	Use:     "details [imdb id]",
	Short:   "Show the full record of a title",
	Args:    cobra.ExactArgs(1),
	Example: "  cinedex details tt0078748",
	Run: func(cmd *cobra.Command, args []string) {
		details, err := omdb.FromConfig().GetMovieDetails(cmd.Context(), strings.TrimSpace(args[0]))
		handleAPIErr(err)

		if err := history.Save(details); err != nil {
			log.Warnf("saving %s to history: %v", details.ID, err)
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(details.URL()))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(details))
			return
		}

		cmd.Print(prettyDetails(details))
	},
}

func prettyDetails(d *omdb.Details) string {
	var sb strings.Builder

	sb.WriteString(style.Title(d.Title))
	sb.WriteString(" ")
	sb.WriteString(style.Faint(fmt.Sprintf("%s %s %s", d.Year, style.GlyphInfo, util.Capitalize(string(d.Type)))))
	sb.WriteString("\n\n")

	field := func(name, value string) {
		if value == "" || value == "N/A" {
			return
		}
		sb.WriteString(style.Fg(style.Purple)(name))
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	field("ID", d.ID)
	field("IMDb", d.URL())
	field("Rated", d.Rated)
	field("Runtime", d.Runtime)
	field("Genre", d.Genre)
	field("Director", d.Director)
	field("Actors", d.Actors)
	for _, r := range d.Ratings {
		field(r.Source, r.Value)
	}

	if d.Plot != "" && d.Plot != "N/A" {
		width := 80
		if w, _, err := util.TerminalSize(); err == nil {
			width = util.Clamp(w, 20, 100)
		}

		sb.WriteString("\n")
		sb.WriteString(wordwrap.String(d.Plot, width))
		sb.WriteString("\n")
	}

	return sb.String()
}
