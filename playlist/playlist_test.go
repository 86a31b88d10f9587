package playlist

import (
	"context"
	"errors"
	"testing"

	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	. "github.com/smartystreets/goconvey/convey"
)

type fetcherFunc func(ctx context.Context, req source.Request) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, req source.Request) (string, error) {
	return f(ctx, req)
}

func TestRank(t *testing.T) {
	Convey("Given a master playlist with two renditions", t, func() {
		body := "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=500\nhttps://a\n#EXT-X-STREAM-INF:BANDWIDTH=2000\nhttps://b\n"

		Convey("The higher bandwidth comes first", func() {
			So(Rank(body), ShouldResemble, []string{"https://b", "https://a"})
		})

		Convey("Variants carry the paired bandwidth", func() {
			So(Variants(body), ShouldResemble, []room.Variant{
				{URL: "https://b", Bandwidth: 2000},
				{URL: "https://a", Bandwidth: 500},
			})
		})
	})

	Convey("An empty body ranks to an empty slice", t, func() {
		So(Rank(""), ShouldBeEmpty)
		So(Rank(""), ShouldNotBeNil)
	})

	Convey("Relative m3u8 lines are used when no absolute URL exists", t, func() {
		body := "#EXTM3U\r\n#EXT-X-STREAM-INF:BANDWIDTH=800\r\nlow/index.m3u8\r\n#EXT-X-STREAM-INF:BANDWIDTH=3000\r\nhigh/index.m3u8\r\n"
		So(Rank(body), ShouldResemble, []string{"high/index.m3u8", "low/index.m3u8"})
	})

	Convey("Absolute URLs win over relative lines", t, func() {
		body := "#EXT-X-STREAM-INF:BANDWIDTH=1\nrel.m3u8\n#EXT-X-STREAM-INF:BANDWIDTH=2\nhttps://abs/x.m3u8\n"
		So(Rank(body), ShouldResemble, []string{"https://abs/x.m3u8"})
	})

	Convey("Ties keep document order", t, func() {
		body := "BANDWIDTH=100\nhttps://x\nBANDWIDTH=900\nhttps://y\nBANDWIDTH=100\nhttps://z\n"
		So(Rank(body), ShouldResemble, []string{"https://y", "https://x", "https://z"})
	})

	Convey("URLs without a paired bandwidth rank last", t, func() {
		body := "BANDWIDTH=10\nhttps://x\nhttps://y\n"
		So(Rank(body), ShouldResemble, []string{"https://x", "https://y"})

		body = "https://y\nhttps://x\nBANDWIDTH=0\nBANDWIDTH=10\n"
		So(Rank(body), ShouldResemble, []string{"https://x", "https://y"})
	})

	Convey("Output is non-increasing in bandwidth", t, func() {
		body := "BANDWIDTH=5\nhttps://a\nBANDWIDTH=50\nhttps://b\nBANDWIDTH=7\nhttps://c\nBANDWIDTH=50\nhttps://d\n"
		variants := Variants(body)
		for i := 1; i < len(variants); i++ {
			So(variants[i-1].Bandwidth, ShouldBeGreaterThanOrEqualTo, variants[i].Bandwidth)
		}
		So(Rank(body), ShouldResemble, []string{"https://b", "https://d", "https://c", "https://a"})
	})
}

func TestFetchRanked(t *testing.T) {
	Convey("Given a fetcher serving a playlist", t, func() {
		var got source.Request
		fetcher := fetcherFunc(func(_ context.Context, req source.Request) (string, error) {
			got = req
			return "BANDWIDTH=1\nhttps://a\nBANDWIDTH=2\nhttps://b\n", nil
		})

		urls, err := FetchRanked(context.Background(), fetcher, source.Request{URL: "https://m/master.m3u8", Proxy: "socks5://p"})
		So(err, ShouldBeNil)
		So(urls, ShouldResemble, []string{"https://b", "https://a"})
		So(got.Proxy, ShouldEqual, "socks5://p")
	})

	Convey("An empty body is a risk-control failure", t, func() {
		fetcher := fetcherFunc(func(context.Context, source.Request) (string, error) { return " \n", nil })
		_, err := FetchRanked(context.Background(), fetcher, source.Request{})
		So(errors.Is(err, room.ErrRiskControl), ShouldBeTrue)
	})

	Convey("Fetch errors are wrapped", t, func() {
		boom := errors.New("boom")
		fetcher := fetcherFunc(func(context.Context, source.Request) (string, error) { return "", boom })
		_, err := FetchRanked(context.Background(), fetcher, source.Request{})
		So(errors.Is(err, boom), ShouldBeTrue)
	})
}
