package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("Should switch to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestRemove(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("Removing a missing path is not an error", func() {
			So(Remove("/nowhere/file.json"), ShouldBeNil)
		})

		Convey("Removing a directory deletes its contents", func() {
			So(API().WriteFile("/data/a.json", []byte("[]"), 0644), ShouldBeNil)
			So(Remove("/data"), ShouldBeNil)

			exists, err := API().Exists("/data/a.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("GacheFs writes through the active backend", func() {
			So(GacheFs{}.MkdirAll("/cache", 0755), ShouldBeNil)
			f, err := GacheFs{}.OpenFile("/cache/x.json", os.O_WRONLY|os.O_CREATE, 0644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/x.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})
}
