// Package auth keeps the metadata API key in the operating system keyring.
package auth

import (
	"errors"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const user = "api-key"

var service = constant.App

// Source tells where the effective API key came from.
type Source string

const (
	SourceNone    Source = "none"
	SourceConfig  Source = "config"
	SourceKeyring Source = "keyring"
)

// SetAPIKey persists the API key in the keyring.
func SetAPIKey(apiKey string) error {
	if apiKey == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(service, user, apiKey)
}

// DeleteAPIKey removes the stored API key. A missing entry is not an error.
func DeleteAPIKey() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// APIKey resolves the effective key: the api.key setting (config file, env, .env) wins over the keyring.
func APIKey() (string, Source) {
	if k := viper.GetString(key.APIKey); k != "" {
		return k, SourceConfig
	}

	if k, err := keyring.Get(service, user); err == nil && k != "" {
		return k, SourceKeyring
	}

	return "", SourceNone
}
