package cmd

import (
	"encoding/json"
	"strings"

	"github.com/cinedex/cinedex/history"
	"github.com/cinedex/cinedex/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "How many titles to show, 0 for all")
	historyCmd.Flags().BoolP("json", "j", false, "Print as JSON")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently viewed titles",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Recent(lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("Nothing viewed yet"))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s %s\n",
				style.Bold(e.String()),
				style.Fg(style.Cyan)(e.ID),
				style.Faint(e.ViewedAt.Format("2006-01-02 15:04")),
			)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:     "remove [imdb id]",
	Short:   "Forget a viewed title",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		entries, err := history.Recent(0)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Map(entries, func(e *history.Entry, _ int) string {
			return e.ID
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		id := strings.TrimSpace(args[0])
		handleErr(history.Remove(id))
		cmd.Println(style.Success("Removed " + id + " from history"))
	},
}
