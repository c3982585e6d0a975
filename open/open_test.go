package open

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	const url = "https://www.imdb.com/title/tt0078748/"

	Convey("Given a supported platform", t, func() {
		for goos, bin := range map[string]string{
			"darwin":  "open",
			"linux":   "xdg-open",
			"android": "termux-open",
		} {
			cmd, err := command(goos, url)
			So(err, ShouldBeNil)
			So(filepath.Base(cmd.Path), ShouldEqual, bin)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, url)
		}
	})

	Convey("Given an unsupported platform", t, func() {
		_, err := command("plan9", url)
		So(err, ShouldNotBeNil)
	})
}
