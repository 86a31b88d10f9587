package filesystem

import (
	"testing"

	"github.com/metafates/gache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSwap(t *testing.T) {
	Convey("Swapping in memory replaces the OS backend until restored", t, func() {
		So(API().Name(), ShouldEqual, "OsFs")

		restore := InMemory()
		So(API().Name(), ShouldEqual, "MemMapFS")

		restore()
		So(API().Name(), ShouldEqual, "OsFs")
	})
}

func TestWriteFile(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		restore := InMemory()
		defer restore()

		Convey("WriteFile creates the parent directories of a script", func() {
			So(WriteFile("/config/scripts/sign.lua", []byte("return 1"), 0o644), ShouldBeNil)

			isDir, err := API().IsDir("/config/scripts")
			So(err, ShouldBeNil)
			So(isDir, ShouldBeTrue)

			data, err := API().ReadFile("/config/scripts/sign.lua")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "return 1")
		})
	})
}

func TestUsage(t *testing.T) {
	Convey("Given a cache directory with two files", t, func() {
		restore := InMemory()
		defer restore()

		So(WriteFile("/cache/identities.json", []byte(`{"entries":{}}`), 0o644), ShouldBeNil)
		So(WriteFile("/cache/version.json", []byte(`"v1.0.0"`), 0o644), ShouldBeNil)

		Convey("The directory is counted recursively", func() {
			files, size, err := Usage("/cache")
			So(err, ShouldBeNil)
			So(files, ShouldEqual, 2)
			So(size, ShouldEqual, int64(len(`{"entries":{}}`)+len(`"v1.0.0"`)))
		})

		Convey("A single file counts as one", func() {
			files, _, err := Usage("/cache/version.json")
			So(err, ShouldBeNil)
			So(files, ShouldEqual, 1)
		})

		Convey("A missing path is empty", func() {
			files, size, err := Usage("/nowhere")
			So(err, ShouldBeNil)
			So(files, ShouldEqual, 0)
			So(size, ShouldEqual, 0)
		})
	})
}

func TestGache(t *testing.T) {
	Convey("gache persists through the swapped backend", t, func() {
		restore := InMemory()
		defer restore()

		c := gache.New[string](&gache.Options{Path: "/cache/latest.json", FileSystem: Gache()})
		So(c.Set("v2.1.0"), ShouldBeNil)

		exists, err := API().Exists("/cache/latest.json")
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)
	})
}
