package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/liveurl/liveurl/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.InMemory()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Scripts() lives under Config()", func() {
			path := Scripts()
			So(filepath.Dir(path), ShouldEqual, Config())
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Identities() is a file inside Cache()", func() {
			So(filepath.Dir(Identities()), ShouldEqual, Cache())
		})

		Convey("LIVEURL_CONFIG_PATH overrides Config()", func() {
			custom := filepath.Join(os.TempDir(), "liveurl-where-test")
			So(os.Setenv(EnvConfigPath, custom), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, custom)
			So(lo.Must(filesystem.API().IsDir(custom)), ShouldBeTrue)
		})
	})
}
