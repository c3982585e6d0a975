package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/cinedex/cinedex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func storeContract(store Store) {
	ctx := context.Background()

	Convey("A missing key reads as None", func() {
		value, err := store.Get(ctx, "missing")
		So(err, ShouldBeNil)
		So(value.IsPresent(), ShouldBeFalse)
	})

	Convey("A written value reads back", func() {
		So(store.Set(ctx, "favorites", `["tt1"]`), ShouldBeNil)

		value, err := store.Get(ctx, "favorites")
		So(err, ShouldBeNil)
		So(value.MustGet(), ShouldEqual, `["tt1"]`)

		Convey("And a second write replaces it", func() {
			So(store.Set(ctx, "favorites", `["tt2","tt1"]`), ShouldBeNil)
			value, _ := store.Get(ctx, "favorites")
			So(value.MustGet(), ShouldEqual, `["tt2","tt1"]`)
		})

		Convey("And deleting it leaves nothing behind", func() {
			So(store.Delete(ctx, "favorites"), ShouldBeNil)
			value, _ := store.Get(ctx, "favorites")
			So(value.IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Deleting a missing key is not an error", func() {
		So(store.Delete(ctx, "never-set"), ShouldBeNil)
	})
}

func TestMemory(t *testing.T) {
	Convey("Given a memory store", t, func() {
		storeContract(NewMemory())
	})
}

func TestFile(t *testing.T) {
	run := 0
	Convey("Given a file store", t, func() {
		run++
		path := filepath.Join("/data", fmt.Sprint(run), "favorites.json")
		store := NewFile(path)
		storeContract(store)

		Convey("Values survive reopening the file", func() {
			ctx := context.Background()
			So(store.Set(ctx, "favorites", `["tt9"]`), ShouldBeNil)

			value, err := NewFile(path).Get(ctx, "favorites")
			So(err, ShouldBeNil)
			So(value.MustGet(), ShouldEqual, `["tt9"]`)
		})
	})
}

func TestBolt(t *testing.T) {
	Convey("Given a bolt store", t, func() {
		store, err := NewBolt(filepath.Join(t.TempDir(), "favorites.db"))
		So(err, ShouldBeNil)
		defer store.Close()

		storeContract(store)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	Convey("Open follows storage.backend", t, func() {
		Convey("memory", func() {
			viper.Set(key.StorageBackend, BackendMemory)
			store, err := Open(ctx)
			So(err, ShouldBeNil)
			So(store, ShouldHaveSameTypeAs, &Memory{})
		})

		Convey("file", func() {
			viper.Set(key.StorageBackend, BackendFile)
			store, err := Open(ctx)
			So(err, ShouldBeNil)
			So(store, ShouldHaveSameTypeAs, &File{})
		})

		Convey("unknown names are rejected", func() {
			viper.Set(key.StorageBackend, "sqlite")
			_, err := Open(ctx)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "sqlite")
		})

		Convey("an unreachable redis fails to open", func() {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()

			_, err := NewRedis(ctx, RedisOptions{Addr: "127.0.0.1:1"})
			So(err, ShouldNotBeNil)
		})

		Reset(func() {
			viper.Set(key.StorageBackend, BackendFile)
		})
	})
}
