package douyin

import (
	"context"
	"fmt"

	"github.com/liveurl/liveurl/extract"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/mo"
)

func (s *strategies) pageRequest(ref room.Reference) (source.Request, error) {
	rid, ok := webRID(ref.URL)
	if !ok {
		return source.Request{}, fmt.Errorf("%w: not a %s room URL", room.ErrUnsupportedURLKind, liveHost)
	}

	return source.Request{
		URL:       liveOrigin + rid,
		Proxy:     ref.Proxy,
		Cookies:   s.cookie(ref.Cookies),
		UserAgent: pageUserAgent,
		Headers:   header("Referer", liveOrigin, "Accept-Language", acceptLanguage),
	}, nil
}

// page scrapes the server-rendered room page.
func (s *strategies) page(ctx context.Context, ref room.Reference) mo.Result[room.Record] {
	req, err := s.pageRequest(ref)
	if err != nil {
		return mo.Err[room.Record](err)
	}

	html, err := s.opts.Fetcher.Fetch(ctx, req)
	if err != nil {
		return mo.Err[room.Record](err)
	}

	return extracted(html, extract.KindPage)
}

// renderedPage loads the room page in a browser, passing its anti-bot scripts.
func (s *strategies) renderedPage(ctx context.Context, ref room.Reference) mo.Result[room.Record] {
	req, err := s.pageRequest(ref)
	if err != nil {
		return mo.Err[room.Record](err)
	}

	html, err := s.opts.Renderer.Render(ctx, req)
	if err != nil {
		return mo.Err[room.Record](fmt.Errorf("render: %w", err))
	}

	return extracted(html, extract.KindPage)
}
