// Package douyin resolves Douyin live rooms.
//
// Four strategies run in order of cost: the desktop web API, the app reflow API
// for share links, a plain fetch of the room page and finally a browser render
// of that page.
package douyin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/liveurl/liveurl/extract"
	"github.com/liveurl/liveurl/resolver"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/mo"
)

const (
	ID   = "douyin"
	Name = "Douyin"
)

// Hosts are the domains whose URLs this platform resolves.
var Hosts = []string{"douyin.com", "iesdouyin.com"}

const (
	liveHost   = "live.douyin.com"
	liveOrigin = "https://" + liveHost + "/"
)

// User agents per upstream surface. Each surface checks the agent against the
// signature and the cookie it was issued for.
const (
	webUserAgent  = "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.5845.97 Safari/537.36"
	appUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36 Edg/141.0.0.0"
	pageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

const acceptLanguage = "zh-CN,zh;q=0.8,zh-TW;q=0.7,zh-HK;q=0.5,en-US;q=0.3,en;q=0.2"

// Options are the collaborators the strategies use.
type Options struct {
	Fetcher  source.Fetcher
	Renderer source.Renderer
	Signer   source.Signer
	Identity source.IdentityResolver
	// Cookie returns the stored cookie header, used when a call carries none.
	Cookie func() string
}

// NewChain builds the strategy chain.
func NewChain(opts Options) *resolver.Chain {
	if opts.Renderer == nil {
		opts.Renderer = source.NoRenderer{}
	}
	if opts.Cookie == nil {
		opts.Cookie = func() string { return "" }
	}

	s := &strategies{opts: opts}

	return resolver.New(ID, opts.Identity,
		resolver.Strategy{Name: "web-api", Attempt: s.webAPI},
		resolver.Strategy{Name: "reflow-api", Attempt: s.reflowAPI},
		resolver.Strategy{Name: "page", Attempt: s.page},
		resolver.Strategy{Name: "rendered-page", Attempt: s.renderedPage},
	)
}

type strategies struct {
	opts Options
}

// cookie returns the per-call cookie, falling back to the stored one.
func (s *strategies) cookie(override string) string {
	if c := strings.TrimSpace(override); c != "" {
		return c
	}
	return s.opts.Cookie()
}

// webRID returns the room id of a live.douyin.com URL.
func webRID(rawURL string) (string, bool) {
	beforeQuery, _, _ := strings.Cut(rawURL, "?")
	_, rid, found := strings.Cut(beforeQuery, liveHost+"/")
	if !found {
		return "", false
	}

	rid = strings.Trim(rid, "/")
	if rid == "" || strings.Contains(rid, "/") {
		return "", false
	}

	return rid, true
}

// signedURL appends the signature of the query to endpoint.
func (s *strategies) signedURL(endpoint string, params url.Values, userAgent string) (string, error) {
	query := params.Encode()
	api := endpoint + "?" + query

	sig, err := s.opts.Signer.Sign(query, userAgent)
	if err != nil {
		return "", err
	}
	if sig != "" {
		api += "&a_bogus=" + sig
	}

	return api, nil
}

func header(kv ...string) http.Header {
	h := make(http.Header)
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func extracted(payload string, kind extract.Kind) mo.Result[room.Record] {
	rec, err := extract.Extract(payload, kind)
	if err != nil {
		return mo.Err[room.Record](err)
	}
	return mo.Ok(rec)
}
