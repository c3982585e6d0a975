// Package config wires defaults, environment variables, .env files and the TOML config file into viper.
package config

import (
	"os"
	"strings"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/where"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// envAliases lists extra variable names accepted for a key, checked after the prefixed name.
var envAliases = map[string][]string{
	key.APIURL: {"MOVIE_API_URL"},
	key.APIKey: {"MOVIE_API_KEY"},
}

// Setup initializes the global configuration.
// Precedence, highest first: flags, process env, .env files, config file, defaults.
func Setup() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		if names, ok := envAliases[env]; ok {
			field := Default[env]
			viper.MustBindEnv(append([]string{env, field.Env()}, names...)...)
			continue
		}
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// loadDotEnv reads every existing .env file. godotenv never overrides variables
// already present in the process, so earlier files win over later ones.
func loadDotEnv() error {
	files := lo.Filter(where.DotEnv(), func(path string, _ int) bool {
		_, err := os.Stat(path)
		return err == nil
	})

	if len(files) == 0 {
		return nil
	}

	return godotenv.Load(files...)
}
