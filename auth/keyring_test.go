package auth

import (
	"testing"

	"github.com/cinedex/cinedex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func TestAPIKey(t *testing.T) {
	keyring.MockInit()

	Convey("Given an empty keyring and no configured key", t, func() {
		viper.Set(key.APIKey, "")
		So(DeleteAPIKey(), ShouldBeNil)

		Convey("No key is resolved", func() {
			k, src := APIKey()
			So(k, ShouldBeEmpty)
			So(src, ShouldEqual, SourceNone)
		})

		Convey("A stored key is resolved from the keyring", func() {
			So(SetAPIKey("secret"), ShouldBeNil)
			k, src := APIKey()
			So(k, ShouldEqual, "secret")
			So(src, ShouldEqual, SourceKeyring)

			Convey("And the configured key takes precedence", func() {
				viper.Set(key.APIKey, "from-config")
				k, src := APIKey()
				So(k, ShouldEqual, "from-config")
				So(src, ShouldEqual, SourceConfig)
			})
		})

		Convey("Empty keys are rejected", func() {
			So(SetAPIKey(""), ShouldNotBeNil)
		})
	})
}
