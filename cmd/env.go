package cmd

import (
	"os"
	"slices"

	"github.com/cinedex/cinedex/config"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd lists the environment variables cinedex reads, with their values.
// Variables may also come from the .env files listed by `cinedex where --config`.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the supported environment variables",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
		)

		secrets := make(map[string]bool)
		names := lo.Map(config.EnvExposed, func(k string, _ int) string {
			field := config.Default[k]
			if k == key.APIKey || k == key.StorageRedisPassword {
				secrets[field.Env()] = true
			}
			return field.Env()
		})
		names = append(names, where.EnvConfigPath)
		slices.Sort(names)

		for _, env := range names {
			value, present := os.LookupEnv(env)

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(style.Purple).Render(env))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(style.Red)("unset"))
			case secrets[env]:
				cmd.Println(style.Fg(style.Green)(mask(value)))
			default:
				cmd.Println(style.Fg(style.Green)(value))
			}
		}
	},
}
