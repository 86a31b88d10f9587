package color

import (
	"testing"

	"github.com/liveurl/liveurl/room"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForStatus(t *testing.T) {
	Convey("Room states map to their colors", t, func() {
		So(ForStatus(room.StatusLive), ShouldEqual, Live)
		So(ForStatus(room.StatusOffline), ShouldEqual, Offline)
		So(ForStatus(room.StatusUnsupported), ShouldEqual, Unsupported)
		So(ForStatus(room.Failed().Status), ShouldEqual, Error)
	})

	Convey("Booleans are success or error", t, func() {
		So(ForBool(true), ShouldEqual, Success)
		So(ForBool(false), ShouldEqual, Error)
	})
}
