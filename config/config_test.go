package config

import (
	"testing"
	"time"

	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/key"
	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.InMemory()
}

func TestSetup(t *testing.T) {
	convey.Convey("Config Setup", t, func() {
		convey.Convey("Should initialize without error", func() {
			convey.So(Setup(), convey.ShouldBeNil)
		})

		convey.Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				convey.So(viper.Get(name), convey.ShouldNotBeNil)
			}
			convey.So(viper.GetString(key.RenderBackend), convey.ShouldEqual, "rod")
			convey.So(viper.GetBool(key.ProbeEnabled), convey.ShouldBeTrue)
		})

		convey.Convey("EnvKeyReplacer should convert dots to underscores", func() {
			convey.So(EnvKeyReplacer.Replace("network.timeout"), convey.ShouldEqual, "network_timeout")
		})

		convey.Convey("Env names carry the application prefix once", func() {
			f := Default[key.NetworkProxy]
			convey.So(f.Env(), convey.ShouldEqual, "LIVEURL_NETWORK_PROXY")
		})
	})
}

func TestEnv(t *testing.T) {
	t.Setenv("LIVEURL_RENDER_BROWSER_PATH", "/opt/chromium/chrome")

	convey.Convey("A variable named by Field.Env overrides the default", t, func() {
		convey.So(Setup(), convey.ShouldBeNil)
		convey.So(viper.GetString(key.RenderBrowserPath), convey.ShouldEqual, "/opt/chromium/chrome")
	})
}

func TestTimeout(t *testing.T) {
	convey.Convey("Timeout", t, func() {
		_ = Setup()

		convey.Convey("Uses the configured number of seconds", func() {
			viper.Set(key.NetworkTimeout, 12)
			convey.So(Timeout(), convey.ShouldEqual, 12*time.Second)
		})

		convey.Convey("Falls back to the default for non-positive values", func() {
			viper.Set(key.NetworkTimeout, 0)
			convey.So(Timeout(), convey.ShouldEqual, 30*time.Second)
		})
	})
}
