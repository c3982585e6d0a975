package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/util"
	"github.com/cinedex/cinedex/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// Favorites are not listed here, `cinedex favorites clear` works for every backend.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"details cache", "details", mo.Some("d"), where.DetailsCache},
	{"queries history", "queries", mo.Some("q"), where.Queries},
	{"viewed history", "history", mo.Some("s"), where.History},
	{"logs", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached files",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", style.GlyphInfo, target.name))
			err := util.Delete(target.location())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			cmd.Println(style.Success(util.Capitalize(target.name) + " cleared"))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
