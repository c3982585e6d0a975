// Package cmd implements the cinedex command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/omdb"
	"github.com/cinedex/cinedex/query"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/tui"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.Flags().StringP("query", "q", "", "Start the browser with this search")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("query", completionQueries))

	rootCmd.Flags().BoolP("favorites", "F", false, "Open the favorites screen first")

	rootCmd.PersistentFlags().String("storage", "", "Favorites backend: "+strings.Join(kv.Backends, ", "))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("storage", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return kv.Backends, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.StorageBackend, rootCmd.PersistentFlags().Lookup("storage")))
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Search movies and series and keep your favorites, from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(style.HiPurple).Render("    - Search movies and series and keep your favorites, from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			Query:     lo.Must(cmd.Flags().GetString("query")),
			Favorites: lo.Must(cmd.Flags().GetBool("favorites")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(style.Red)(style.GlyphFail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// handleAPIErr is handleErr for movie API failures, printing their user-facing message.
func handleAPIErr(err error) {
	if err != nil {
		log.Error(err)
		stderrNotifier.ShowNotice(omdb.Message(err), notify.Options{Variant: notify.Error})
		os.Exit(1)
	}
}

// stderrNotifier prints notices for commands running without the TUI.
var stderrNotifier = notify.NewPrinter(os.Stderr)

func completionQueries(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}
