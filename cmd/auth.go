package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cinedex/cinedex/auth"
	"github.com/cinedex/cinedex/config"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/notify"
	"github.com/cinedex/cinedex/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the movie API key",
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authSetKeyCmd.Flags().StringP("key", "k", "", "The API key. Prompted for when omitted")
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey := lo.Must(cmd.Flags().GetString("key"))

		if apiKey == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "API key:",
			}, &apiKey, survey.WithValidator(survey.Required)))
		}

		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			handleErr(errors.New("api key must not be blank"))
		}

		handleErr(auth.SetAPIKey(apiKey))
		stderrNotifier.ShowNotice("API key saved to the keyring", notify.Options{Variant: notify.Success})
	},
}

func init() {
	authCmd.AddCommand(authDeleteKeyCmd)
}

var authDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the API key from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		stderrNotifier.ShowNotice("API key removed from the keyring", notify.Options{Variant: notify.Success})
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key comes from",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey, source := auth.APIKey()

		switch source {
		case auth.SourceNone:
			field := config.Default[key.APIKey]
			cmd.Printf("%s no API key, set one with %s or %s\n",
				style.Fg(style.Red)(style.GlyphFail),
				style.Fg(style.Yellow)("cinedex auth set-key"),
				style.Fg(style.Yellow)(field.Env()),
			)
		default:
			cmd.Printf("%s API key %s from %s\n",
				style.Fg(style.Green)(style.GlyphSuccess),
				style.Faint(mask(apiKey)),
				style.Fg(style.Purple)(string(source)),
			)
		}
	},
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
