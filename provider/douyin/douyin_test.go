package douyin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	liveJSON    = `{"status":2,"title":"show","stream_url":{"hls_pull_url_map":{"FULL_HD1":"https://h/fhd.m3u8","SD1":"https://h/sd.m3u8"},"flv_pull_url":{"FULL_HD1":"https://f/fhd.flv","SD1":"https://f/sd.flv"}}}`
	webPayload  = `{"data":{"data":[` + liveJSON + `],"user":{"nickname":"WebAnchor"}}}`
	vrPayload   = `{"data":{"data":[],"user":{"nickname":"WebAnchor"}}}`
	reflowBody  = `{"data":{"room":{"status":4,"owner":{"nickname":"AppAnchor"}}}}`
	profileHTML = `<script>{\"user\":{\"uniqueId\":\"anchor42\",\"nickname\":\"x\"}}</script>`
)

// pageHTML embeds a live room the way the room page does.
func pageHTML(anchor string) string {
	state := `{"state":{"roomStore":{"roomInfo":{"room":` + liveJSON + `,"anchor":{"nickname":"` + anchor +
		`","avatar_thumb":{},"has_commerce_goods":false}},"x":1},"linkmicStore":{}}`
	return `<script>self.__pace_f.push([1,"` + strings.ReplaceAll(state, `"`, `\"`) + `]\n"])</script>`
}

type fakeFetcher struct {
	mu     sync.Mutex
	reqs   []source.Request
	handle func(req source.Request) (string, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, req source.Request) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	return f.handle(req)
}

func (f *fakeFetcher) urls() []string {
	var urls []string
	for _, r := range f.reqs {
		urls = append(urls, r.URL)
	}
	return urls
}

type fakeRedirector map[string]string

func (r fakeRedirector) FinalURL(_ context.Context, req source.Request) (string, error) {
	if final, ok := r[req.URL]; ok {
		return final, nil
	}
	return "", errors.New("no redirect")
}

type fakeRenderer struct {
	html  string
	calls int
}

func (r *fakeRenderer) Render(context.Context, source.Request) (string, error) {
	r.calls++
	return r.html, nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(query, _ string) (string, error) {
	if query == "" {
		return "", errors.New("empty query")
	}
	return "SIG", nil
}

func newOptions(fetcher *fakeFetcher, redirects fakeRedirector, renderer source.Renderer) Options {
	return Options{
		Fetcher:  fetcher,
		Renderer: renderer,
		Signer:   fakeSigner{},
		Identity: NewIdentity(fetcher, redirects, nil),
		Cookie:   func() string { return "stored=1" },
	}
}

func TestWebAPI(t *testing.T) {
	ctx := context.Background()

	Convey("Given a room URL served by the web API", t, func() {
		fetcher := &fakeFetcher{handle: func(req source.Request) (string, error) {
			if strings.HasPrefix(req.URL, webEnterAPI) {
				return webPayload, nil
			}
			return "", errors.New("unexpected " + req.URL)
		}}
		chain := NewChain(newOptions(fetcher, nil, nil))

		rec := chain.Resolve(ctx, room.Reference{URL: "https://live.douyin.com/123?from=share", Cookies: "ttwid=override"})

		Convey("The web API record is returned", func() {
			So(rec.AnchorName, ShouldEqual, "WebAnchor")
			So(rec.Platform, ShouldEqual, ID)
			So(rec.IsLive(), ShouldBeTrue)
			So(rec.Ladder(room.HLS).Tags(), ShouldResemble, []string{"FULL_HD1", "SD1"})
		})

		Convey("The request is signed and carries the call's cookie", func() {
			So(fetcher.reqs, ShouldHaveLength, 1)
			req := fetcher.reqs[0]
			So(req.URL, ShouldContainSubstring, "web_rid=123")
			So(req.URL, ShouldEndWith, "&a_bogus=SIG")
			So(req.Cookies, ShouldEqual, "ttwid=override")
			So(req.UserAgent, ShouldEqual, webUserAgent)
			So(req.Headers.Get("Referer"), ShouldEqual, "https://live.douyin.com/123")
		})
	})

	Convey("The stored cookie is used when the call has none", t, func() {
		fetcher := &fakeFetcher{handle: func(source.Request) (string, error) { return webPayload, nil }}
		NewChain(newOptions(fetcher, nil, nil)).Resolve(ctx, room.Reference{URL: "https://live.douyin.com/123"})
		So(fetcher.reqs[0].Cookies, ShouldEqual, "stored=1")
	})

	Convey("A VR session ends the resolution", t, func() {
		fetcher := &fakeFetcher{handle: func(source.Request) (string, error) { return vrPayload, nil }}
		renderer := &fakeRenderer{html: pageHTML("never")}
		rec := NewChain(newOptions(fetcher, nil, renderer)).Resolve(ctx, room.Reference{URL: "https://live.douyin.com/123"})

		So(rec.AnchorName, ShouldBeEmpty)
		So(fetcher.reqs, ShouldHaveLength, 1)
		So(renderer.calls, ShouldEqual, 0)
	})
}

func TestFallbacks(t *testing.T) {
	ctx := context.Background()
	ref := room.Reference{URL: "https://live.douyin.com/123"}

	Convey("A blocked web API falls back to the room page", t, func() {
		fetcher := &fakeFetcher{handle: func(req source.Request) (string, error) {
			if req.URL == "https://live.douyin.com/123" {
				return pageHTML("PageAnchor"), nil
			}
			return "", nil
		}}
		renderer := &fakeRenderer{}
		rec := NewChain(newOptions(fetcher, nil, renderer)).Resolve(ctx, ref)

		So(rec.AnchorName, ShouldEqual, "PageAnchor")
		So(rec.Ladder(room.FLV).URLs(), ShouldResemble, []string{"https://f/fhd.flv", "https://f/sd.flv"})
		So(renderer.calls, ShouldEqual, 0)
	})

	Convey("The browser render is the last resort", t, func() {
		fetcher := &fakeFetcher{handle: func(source.Request) (string, error) { return "", nil }}
		renderer := &fakeRenderer{html: pageHTML("RenderedAnchor")}
		rec := NewChain(newOptions(fetcher, nil, renderer)).Resolve(ctx, ref)

		So(rec.AnchorName, ShouldEqual, "RenderedAnchor")
		So(renderer.calls, ShouldEqual, 1)
	})

	Convey("A live web API room without stream_url falls over to the room page", t, func() {
		fetcher := &fakeFetcher{handle: func(req source.Request) (string, error) {
			switch {
			case strings.HasPrefix(req.URL, webEnterAPI):
				return `{"data":{"data":[{"status":2,"title":"t"}],"user":{"nickname":"WebAnchor"}}}`, nil
			case req.URL == "https://live.douyin.com/123":
				return pageHTML("PageAnchor"), nil
			}
			return "", errors.New("unexpected " + req.URL)
		}}
		rec := NewChain(newOptions(fetcher, nil, &fakeRenderer{})).Resolve(ctx, ref)

		So(rec.AnchorName, ShouldEqual, "PageAnchor")
		So(rec.IsLive(), ShouldBeTrue)
		So(fetcher.reqs, ShouldHaveLength, 2)
	})

	Convey("A blocked room URL is not resolved a second time", t, func() {
		input := "https://live.douyin.com/123?from=share"
		redirects := fakeRedirector{input: "https://live.douyin.com/123"}
		fetcher := &fakeFetcher{handle: func(source.Request) (string, error) { return "", nil }}
		renderer := &fakeRenderer{}
		rec := NewChain(newOptions(fetcher, redirects, renderer)).Resolve(ctx, room.Reference{URL: input})

		So(rec.AnchorName, ShouldBeEmpty)
		So(renderer.calls, ShouldEqual, 1)

		webCalls := 0
		for _, u := range fetcher.urls() {
			if strings.HasPrefix(u, webEnterAPI) {
				webCalls++
			}
		}
		So(webCalls, ShouldEqual, 1)
		So(fetcher.urls(), ShouldHaveLength, 2)
	})

	Convey("Without a renderer an exhausted chain fails", t, func() {
		fetcher := &fakeFetcher{handle: func(source.Request) (string, error) { return "", nil }}
		opts := newOptions(fetcher, nil, nil)
		opts.Renderer = nil
		rec := NewChain(opts).Resolve(ctx, ref)

		So(rec.AnchorName, ShouldBeEmpty)
		So(rec.Status, ShouldEqual, room.StatusUnsupported)
	})
}

func TestShareLinks(t *testing.T) {
	ctx := context.Background()

	Convey("A share link leading to a live room resolves through the reflow API", t, func() {
		share := "https://v.douyin.com/abcd/"
		redirects := fakeRedirector{share: "https://webcast.amemv.com/douyin/webcast/reflow/7345?u_code=1&sec_user_id=MS4wX-y&did=2"}
		fetcher := &fakeFetcher{handle: func(req source.Request) (string, error) {
			if strings.HasPrefix(req.URL, reflowInfoAPI) {
				return reflowBody, nil
			}
			return "", errors.New("unexpected " + req.URL)
		}}

		rec := NewChain(newOptions(fetcher, redirects, nil)).Resolve(ctx, room.Reference{URL: share})

		So(rec.AnchorName, ShouldEqual, "AppAnchor")
		So(rec.Status, ShouldEqual, room.StatusOffline)
		So(fetcher.reqs[0].URL, ShouldContainSubstring, "room_id=7345")
		So(fetcher.reqs[0].URL, ShouldContainSubstring, "sec_user_id=MS4wX-y")
		So(fetcher.reqs[0].URL, ShouldEndWith, "&a_bogus=SIG")
	})

	Convey("A share link to a profile is remapped to the anchor's room", t, func() {
		share := "https://v.douyin.com/efgh/"
		redirects := fakeRedirector{share: "https://www.douyin.com/user/MS4wY?from=share"}
		fetcher := &fakeFetcher{handle: func(req source.Request) (string, error) {
			switch {
			case req.URL == userPage+"MS4wY":
				return profileHTML, nil
			case strings.HasPrefix(req.URL, webEnterAPI) && strings.Contains(req.URL, "web_rid=anchor42"):
				return webPayload, nil
			}
			return "", errors.New("unexpected " + req.URL)
		}}

		rec := NewChain(newOptions(fetcher, redirects, nil)).Resolve(ctx, room.Reference{URL: share})

		So(rec.AnchorName, ShouldEqual, "WebAnchor")
		So(fetcher.urls()[0], ShouldEqual, userPage+"MS4wY")
	})
}

func TestWebRID(t *testing.T) {
	Convey("webRID reads live.douyin.com room ids", t, func() {
		for raw, want := range map[string]string{
			"https://live.douyin.com/123":            "123",
			"https://live.douyin.com/abc_def/?x=1":   "abc_def",
			"live.douyin.com/42?enter_from_merge=xx": "42",
		} {
			rid, ok := webRID(raw)
			So(ok, ShouldBeTrue)
			So(rid, ShouldEqual, want)
		}

		for _, raw := range []string{"https://v.douyin.com/abc/", "https://live.douyin.com/", "https://live.douyin.com/a/b"} {
			_, ok := webRID(raw)
			So(ok, ShouldBeFalse)
		}
	})
}
