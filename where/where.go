// Package where resolves application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "CINEDEX_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// It follows os.UserConfigDir unless CINEDEX_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory for daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Data resolves the directory holding user data such as favorites.
func Data() string {
	return ensureDir(filepath.Join(Config(), "data"))
}

// Favorites is the JSON file used by the file storage backend.
func Favorites() string {
	return filepath.Join(Data(), "favorites.json")
}

// FavoritesDB is the bbolt database used by the bolt storage backend.
// bbolt opens files directly, so the directory is created on the OS filesystem.
func FavoritesDB() string {
	dir := filepath.Join(Config(), "data")
	lo.Must0(os.MkdirAll(dir, os.ModePerm))
	return filepath.Join(dir, "favorites.db")
}

// History is the registry of recently viewed titles.
func History() string {
	return filepath.Join(Data(), "history.json")
}

// DetailsCache is the on-disk cache of title details.
func DetailsCache() string {
	return filepath.Join(Cache(), "details.json")
}

// Queries is the search query suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// DotEnv lists the .env files consulted on startup, lowest precedence last.
func DotEnv() []string {
	return []string{
		filepath.Join(Config(), ".env"),
		".env",
	}
}
