package config

import (
	"path/filepath"
	"testing"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		t.Setenv(where.EnvConfigPath, t.TempDir())

		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should register every key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
			So(len(EnvExposed), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should populate defaults", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.APITimeoutSeconds), ShouldEqual, 15)
			So(viper.GetInt(key.SearchDebounceMs), ShouldEqual, 500)
			So(viper.GetInt(key.NotifyDurationMs), ShouldEqual, 3000)
		})

		Convey("Should read prefixed environment variables", func() {
			t.Setenv("CINEDEX_API_TIMEOUT_SECONDS", "3")
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.APITimeoutSeconds), ShouldEqual, 3)
		})

		Convey("Should accept the unprefixed API aliases", func() {
			t.Setenv("MOVIE_API_URL", "http://localhost:9999")
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.APIURL), ShouldEqual, "http://localhost:9999")
		})

		Convey("Should read the config file", func() {
			path := filepath.Join(where.Config(), "cinedex.toml")
			So(filesystem.API().WriteFile(path, []byte("[storage]\nbackend = \"bolt\"\n"), 0644), ShouldBeNil)
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.StorageBackend), ShouldEqual, "bolt")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("storage.redis_addr"), ShouldEqual, "storage_redis_addr")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default[key.StorageRedisAddr]
			So(f.Env(), ShouldEqual, "CINEDEX_STORAGE_REDIS_ADDR")
		})
	})
}
