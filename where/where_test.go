package where

import (
	"path/filepath"
	"testing"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Directories are created on demand", func() {
			for _, dir := range []string{Config(), Cache(), Logs(), Data()} {
				So(dir, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(dir)), ShouldBeTrue)
			}
		})

		Convey("Files live under their directories", func() {
			So(filepath.Dir(Favorites()), ShouldEqual, Data())
			So(filepath.Dir(DetailsCache()), ShouldEqual, Cache())
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})

		Convey("CINEDEX_CONFIG_PATH overrides the config directory", func() {
			t.Setenv(EnvConfigPath, "/custom/cinedex")
			So(Config(), ShouldEqual, "/custom/cinedex")
			So(DotEnv()[0], ShouldEqual, filepath.Join("/custom/cinedex", ".env"))
		})
	})
}
