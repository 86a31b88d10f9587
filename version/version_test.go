package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare by major, minor, then patch", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.3.0", "0.10.0", -1},
			{"2.0.0", "v1.99.99", 1},
			{"1.2", "1.2.0", 0},
			{"v1", "0.9.9", 1},
			{"0.4.0-rc.1", "0.4.0", -1},
			{"0.4.0", "0.4.0-rc.1", 1},
			{"0.4.0-rc.2", "0.4.0-rc.1", 1},
			{"0.4.0-rc.1", "0.3.9", 1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Malformed versions are errors", t, func() {
		for _, bad := range []string{"latest", "", "1.2.3.4", "1.x.0", "v-1"} {
			_, err := Compare(bad, "1.0.0")
			So(err, ShouldNotBeNil)
		}
	})
}

func TestTagVersion(t *testing.T) {
	Convey("The release tag is read without its v prefix", t, func() {
		v, err := tagVersion(`{"tag_name":"v0.4.1","name":"x"}`)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "0.4.1")
	})

	Convey("A release without a tag is an error", t, func() {
		_, err := tagVersion(`{"message":"Not Found"}`)
		So(err, ShouldNotBeNil)
	})
}
