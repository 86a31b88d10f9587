package cookies

import (
	"testing"

	"github.com/zalando/go-keyring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCookies(t *testing.T) {
	Convey("Given a mock keyring", t, func() {
		keyring.MockInit()

		Convey("Lookup falls back when nothing is stored", func() {
			So(Lookup("douyin", "from-config"), ShouldEqual, "from-config")
		})

		Convey("A stored cookie wins over the fallback", func() {
			So(Set("douyin", "ttwid=1"), ShouldBeNil)
			So(Lookup("douyin", "from-config"), ShouldEqual, "ttwid=1")

			Convey("And is scoped to its platform", func() {
				_, err := Get("other")
				So(err, ShouldEqual, keyring.ErrNotFound)
			})

			Convey("Delete removes it", func() {
				So(Delete("douyin"), ShouldBeNil)
				So(Lookup("douyin", ""), ShouldBeEmpty)
			})
		})
	})
}
