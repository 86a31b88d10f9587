package open

import (
	"context"
	"errors"
	"testing"

	"github.com/liveurl/liveurl/room"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitize(t *testing.T) {
	Convey("Stream URLs are passed through", t, func() {
		got, err := sanitize("  https://pull.example.com/stage/a.flv?codec=h264 ")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, "https://pull.example.com/stage/a.flv?codec=h264")
	})

	Convey("Flags, control characters and other schemes are rejected", t, func() {
		for _, bad := range []string{
			"",
			"--script=evil.lua",
			"https://a/b\nc",
			"file:///etc/passwd",
		} {
			_, err := sanitize(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestPlayerArgs(t *testing.T) {
	Convey("Known players get the title before the URL", t, func() {
		link := "https://pull.example.com/stage/a.m3u8"

		So(playerArgs("mpv", link, "Ann - night"), ShouldResemble, []string{"--force-media-title=Ann - night", "--", link})
		So(playerArgs(`C:\Tools\mpv.exe`, link, "Ann"), ShouldResemble, []string{"--force-media-title=Ann", "--", link})
		So(playerArgs("/usr/bin/vlc", link, "Ann"), ShouldResemble, []string{"--meta-title=Ann", link})
		So(playerArgs("ffplay", link, "Ann"), ShouldResemble, []string{"-window_title", "Ann", link})
	})

	Convey("Other players and empty titles get only the URL", t, func() {
		So(playerArgs("potplayer", "https://a/b.flv", "Ann"), ShouldResemble, []string{"https://a/b.flv"})
		So(playerArgs("mpv", "https://a/b.flv", ""), ShouldResemble, []string{"https://a/b.flv"})
	})
}

func TestMediaTitle(t *testing.T) {
	Convey("The title joins anchor, room title and quality", t, func() {
		So(mediaTitle(room.PlaybackResult{AnchorName: "Ann", Title: "night show", Quality: "HD"}), ShouldEqual, "Ann - night show - [HD]")
		So(mediaTitle(room.PlaybackResult{AnchorName: "Ann", Title: "  "}), ShouldEqual, "Ann")
	})
}

func TestStream(t *testing.T) {
	Convey("Rooms that are not live are refused before anything is launched", t, func() {
		err := Stream(context.Background(), room.PlaybackResult{AnchorName: "Ann"}, "mpv")
		So(errors.Is(err, ErrNotLive), ShouldBeTrue)
	})

	Convey("Unsafe record URLs are refused", t, func() {
		err := Stream(context.Background(), room.PlaybackResult{AnchorName: "Ann", IsLive: true, RecordURL: "-oevil"}, "mpv")
		So(err, ShouldNotBeNil)
		So(errors.Is(err, ErrNotLive), ShouldBeFalse)
	})
}
