package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cinedex/cinedex/config"
	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/kv"
	"github.com/cinedex/cinedex/style"
	"github.com/cinedex/cinedex/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	msg := fmt.Sprintf(
		"unknown key %s, did you mean %s?",
		style.Fg(style.Red)(name),
		style.Fg(style.Yellow)(closest),
	)

	return errors.New(msg)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd displays metadata and descriptions for configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display detailed information and descriptions for specified configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = make([]config.Field, 0, len(keys))

			for _, key := range keys {
				if _, ok := config.Default[key]; !ok {
					handleErr(errUnknownKey(key))
				}

				fields = append(fields, config.Default[key])
			}
		}

		slices.SortFunc(fields, func(a, b config.Field) int {
			return strings.Compare(a.Key, b.Key)
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(fields))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Println()
				cmd.Println()
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value to assign to the configuration key")

	configSetCmd.Flags().StringP("key", "k", "", "The configuration key to update")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd updates the value of a specific configuration key.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update the value of a specified configuration key",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		name, raw := keyAndValue(cmd, args)

		field, ok := config.Default[name]
		if !ok {
			handleErr(errUnknownKey(name))
		}

		v, err := parseValue(field, raw)
		handleErr(err)
		handleErr(validateValue(name, v))

		viper.Set(name, v)
		writeConfig()

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(style.Green)(style.GlyphSuccess),
			style.Fg(style.Purple)(name),
			style.Fg(style.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func keyAndValue(cmd *cobra.Command, args []string) (string, []string) {
	var (
		name  = lo.Must(cmd.Flags().GetString("key"))
		value = lo.Must(cmd.Flags().GetStringSlice("value"))
	)

	if len(args) >= 1 {
		name = args[0]
	}

	if len(args) >= 2 {
		value = args[1:]
	}

	if name == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}

	if len(value) == 0 {
		handleErr(errors.New("value is required as an argument or --value flag"))
	}

	return name, value
}

// parseValue converts raw to the type of the field's default.
func parseValue(field config.Field, raw []string) (any, error) {
	switch field.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		v, err := cast.ToIntE(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return v, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", field.Key)
	}
}

func validateValue(name string, v any) error {
	switch name {
	case key.StorageBackend:
		if !slices.Contains(kv.Backends, cast.ToString(v)) {
			return fmt.Errorf("unknown storage backend %q, available: %s", v, strings.Join(kv.Backends, ", "))
		}
	case key.LogsLevel:
		if _, err := logrus.ParseLevel(cast.ToString(v)); err != nil {
			return err
		}
	case key.APITimeoutSeconds, key.SearchDebounceMs, key.NotifyDurationMs, key.FavoritesDetailsConcurrency:
		if cast.ToInt(v) <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	return nil
}

func writeConfig() {
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		handleErr(viper.SafeWriteConfig())
	default:
		handleErr(err)
	}
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The specific configuration key to retrieve")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configGetCmd retrieves the current value of a configuration key.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Retrieve the current value of a specified configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("key"))
		if len(args) >= 1 {
			name = args[0]
		}

		if name == "" {
			handleErr(errors.New("key is required as an argument or --key flag"))
		}

		if _, ok := config.Default[name]; !ok {
			handleErr(errUnknownKey(name))
		}

		if name == key.APIKey || name == key.StorageRedisPassword {
			cmd.Println(mask(viper.GetString(name)))
			return
		}

		cmd.Println(viper.Get(name))
	},
}

func configFilePath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite the existing configuration file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFilePath()

		if lo.Must(cmd.Flags().GetBool("force")) {
			exists, err := filesystem.API().Exists(path)
			handleErr(err)

			if exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Println(style.Success("wrote config to " + path))
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFilePath()))
		cmd.Println(style.Success("deleted config"))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every configuration key to its default value")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores configuration keys to their default values.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a configuration key to its default value",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name = lo.Must(cmd.Flags().GetString("key"))
			all  = lo.Must(cmd.Flags().GetBool("all"))
		)

		if all {
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}

			writeConfig()
			cmd.Println(style.Success("reset all config values"))
			return
		}

		field, ok := config.Default[name]
		if !ok {
			handleErr(errUnknownKey(name))
		}

		viper.Set(name, field.Value)
		writeConfig()

		cmd.Printf(
			"%s reset %s to default value %s\n",
			style.Fg(style.Green)(style.GlyphSuccess),
			style.Fg(style.Purple)(name),
			style.Fg(style.Yellow)(fmt.Sprintf("%v", field.Value)),
		)
	},
}
