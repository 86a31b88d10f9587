package douyin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/liveurl/liveurl/extract"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/mo"
)

const webEnterAPI = "https://live.douyin.com/webcast/room/web/enter/"

func (s *strategies) webAPI(ctx context.Context, ref room.Reference) mo.Result[room.Record] {
	rid, ok := webRID(ref.URL)
	if !ok {
		return mo.Err[room.Record](fmt.Errorf("%w: not a %s room URL", room.ErrUnsupportedURLKind, liveHost))
	}

	params := url.Values{
		"aid":              {"6383"},
		"app_name":         {"douyin_web"},
		"live_id":          {"1"},
		"device_platform":  {"web"},
		"language":         {"zh-CN"},
		"browser_language": {"zh-CN"},
		"browser_platform": {"Win32"},
		"browser_name":     {"Chrome"},
		"browser_version":  {"116.0.0.0"},
		"web_rid":          {rid},
		"msToken":          {""},
	}

	api, err := s.signedURL(webEnterAPI, params, webUserAgent)
	if err != nil {
		return mo.Err[room.Record](fmt.Errorf("sign: %w", err))
	}

	body, err := s.opts.Fetcher.Fetch(ctx, source.Request{
		URL:       api,
		Proxy:     ref.Proxy,
		Cookies:   s.cookie(ref.Cookies),
		UserAgent: webUserAgent,
		Headers:   header("Referer", liveOrigin+rid),
	})
	if err != nil {
		return mo.Err[room.Record](err)
	}

	return extracted(body, extract.KindWebAPI)
}
