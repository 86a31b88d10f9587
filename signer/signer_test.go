package signer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const echoScript = `
function Sign(query, user_agent)
	return string.len(query) .. ":" .. user_agent
end
`

type staticFetcher struct {
	body string
	err  error
}

func (f staticFetcher) Fetch(context.Context, source.Request) (string, error) {
	return f.body, f.err
}

func writeScript(path, content string) {
	So(filesystem.WriteFile(path, []byte(content), 0o644), ShouldBeNil)
	forget(path)
}

func TestLua(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.InMemory()
		path := "/scripts/sign.lua"

		Convey("A script defining Sign signs queries", func() {
			writeScript(path, echoScript)

			s, err := Load(path)
			So(err, ShouldBeNil)

			sig, err := s.Sign("aid=6383", "agent")
			So(err, ShouldBeNil)
			So(sig, ShouldEqual, "8:agent")
		})

		Convey("A script without Sign is rejected", func() {
			writeScript(path, `function Other() return "" end`)
			_, err := Load(path)
			So(err, ShouldNotBeNil)
		})

		Convey("A script returning a non-string fails to sign", func() {
			writeScript(path, `function Sign(q, ua) return 42 end`)
			s, err := Load(path)
			So(err, ShouldBeNil)
			_, err = s.Sign("q", "ua")
			So(err, ShouldNotBeNil)
		})

		Convey("A script raising an error fails to sign", func() {
			writeScript(path, `function Sign(q, ua) error("blocked") end`)
			s, err := Load(path)
			So(err, ShouldBeNil)
			_, err = s.Sign("q", "ua")
			So(err, ShouldNotBeNil)
		})

		Convey("FromConfig falls back to Noop without a script", func() {
			viper.Set(key.SignerScript, "/scripts/missing.lua")
			defer viper.Set(key.SignerScript, "")

			s := FromConfig()
			So(s, ShouldHaveSameTypeAs, Noop{})
			sig, err := s.Sign("q", "ua")
			So(err, ShouldBeNil)
			So(sig, ShouldBeEmpty)
		})

		Convey("FromConfig loads the configured script", func() {
			writeScript(path, echoScript)
			viper.Set(key.SignerScript, path)
			defer viper.Set(key.SignerScript, "")

			So(FromConfig(), ShouldHaveSameTypeAs, &Lua{})
		})
	})
}

func TestUpdate(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.InMemory()
		path := "/scripts/sign.lua"
		ctx := context.Background()

		Convey("A missing script is downloaded", func() {
			changed, err := Update(ctx, staticFetcher{body: echoScript}, "https://scripts.example.com/sign.lua", path)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)

			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, echoScript)

			Convey("An identical script is left alone", func() {
				changed, err := Update(ctx, staticFetcher{body: echoScript}, "https://scripts.example.com/sign.lua", path)
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("A broken download never replaces the current script", func() {
			writeScript(path, echoScript)

			_, err := Update(ctx, staticFetcher{body: "function Sign("}, "u", path)
			So(err, ShouldNotBeNil)

			data, _ := filesystem.API().ReadFile(path)
			So(string(data), ShouldEqual, echoScript)

			exists, _ := filesystem.API().Exists(path + ".tmp")
			So(exists, ShouldBeFalse)
		})

		Convey("Fetch failures are returned", func() {
			boom := errors.New("boom")
			_, err := Update(ctx, staticFetcher{err: boom}, "u", path)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}

func TestScaffold(t *testing.T) {
	Convey("Scaffold renders a loadable script", t, func() {
		var b bytes.Buffer
		So(Scaffold(&b, "douyin", "alice"), ShouldBeNil)
		So(b.String(), ShouldContainSubstring, "-- @platform douyin")
		So(b.String(), ShouldContainSubstring, "function Sign(query, user_agent)")

		filesystem.InMemory()
		writeScript("/scripts/new.lua", b.String())
		_, err := Load("/scripts/new.lua")
		So(err, ShouldBeNil)
	})
}
