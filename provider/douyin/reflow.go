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

const reflowInfoAPI = "https://webcast.amemv.com/webcast/room/reflow/info/"

// reflowAPI resolves app share links through the reflow endpoint, which needs the
// room id and the anchor's sec_user_id behind the link.
func (s *strategies) reflowAPI(ctx context.Context, ref room.Reference) mo.Result[room.Record] {
	if _, ok := webRID(ref.URL); ok {
		return mo.Err[room.Record](fmt.Errorf("%w: room URLs go through the web API", room.ErrUnsupportedURLKind))
	}

	if s.opts.Identity == nil {
		return mo.Err[room.Record](fmt.Errorf("%w: no identity resolver", room.ErrUnsupportedURLKind))
	}

	id, err := s.opts.Identity.ResolveIdentity(ctx, ref.URL, ref.Proxy)
	if err != nil {
		return mo.Err[room.Record](err)
	}

	params := url.Values{
		"verifyFp":     {"verify_hwj52020_7szNlAB7_pxNY_48Vh_ALKF_GA1Uf3yteoOY"},
		"type_id":      {"0"},
		"live_id":      {"1"},
		"room_id":      {id.RoomID},
		"sec_user_id":  {id.SecUserID},
		"version_code": {"99.99.99"},
		"app_id":       {"1128"},
	}

	api, err := s.signedURL(reflowInfoAPI, params, appUserAgent)
	if err != nil {
		return mo.Err[room.Record](fmt.Errorf("sign: %w", err))
	}

	body, err := s.opts.Fetcher.Fetch(ctx, source.Request{
		URL:       api,
		Proxy:     ref.Proxy,
		Cookies:   s.cookie(ref.Cookies),
		UserAgent: appUserAgent,
		Headers:   header("Referer", liveOrigin, "Accept-Language", acceptLanguage),
	})
	if err != nil {
		return mo.Err[room.Record](err)
	}

	return extracted(body, extract.KindReflowAPI)
}
