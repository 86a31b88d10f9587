package render

import (
	"net/http"
	"testing"

	"github.com/liveurl/liveurl/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Known backends are constructed", t, func() {
		r, err := New(BackendRod, Options{})
		So(err, ShouldBeNil)
		So(r, ShouldHaveSameTypeAs, &Rod{})

		r, err = New(BackendChromedp, Options{Headless: true})
		So(err, ShouldBeNil)
		So(r, ShouldHaveSameTypeAs, &Chromedp{})
	})

	Convey("Unknown backends are rejected", t, func() {
		_, err := New("firefox", Options{})
		So(err, ShouldNotBeNil)
	})
}

func TestRequestMapping(t *testing.T) {
	req := source.Request{
		URL:       "https://live.example.com/123?from=share",
		UserAgent: "agent",
		Cookies:   "ttwid=1; msToken=2",
		Headers:   http.Header{"Referer": {"https://live.example.com/"}},
	}

	Convey("Cookies are scoped to the page origin", t, func() {
		cookies := rodCookies(req)
		So(cookies, ShouldHaveLength, 2)
		So(cookies[0].Name, ShouldEqual, "ttwid")
		So(cookies[1].Value, ShouldEqual, "2")
		So(cookies[0].URL, ShouldEqual, "https://live.example.com/")
	})

	Convey("Extra headers leave the user agent to the browser", t, func() {
		extra := extraHeaders(req)
		So(extra, ShouldContainKey, "Referer")
		So(extra, ShouldContainKey, "Cookie")
		So(extra, ShouldNotContainKey, "User-Agent")
	})
}
