package render

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/source"
)

// Rod renders pages with a browser launched by go-rod.
type Rod struct {
	opts Options
}

func (r *Rod) Render(ctx context.Context, req source.Request) (string, error) {
	ctx, cancel := withTimeout(ctx, r.opts)
	defer cancel()

	l := launcher.New().Context(ctx).Headless(r.opts.Headless).Leakless(true)
	if r.opts.BrowserPath != "" {
		l = l.Bin(r.opts.BrowserPath)
	}
	if req.Proxy != "" {
		l = l.Proxy(req.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.Debugf("close browser: %v", closeErr)
		}
	}()

	if cookies := rodCookies(req); len(cookies) > 0 {
		if err := browser.SetCookies(cookies); err != nil {
			return "", fmt.Errorf("set cookies: %w", err)
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}

	if req.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: req.UserAgent}); err != nil {
			return "", fmt.Errorf("set user agent: %w", err)
		}
	}

	if extra := extraHeaders(req); len(extra) > 0 {
		var dict []string
		for k, v := range extra {
			dict = append(dict, k, v)
		}
		if _, err := page.SetExtraHeaders(dict); err != nil {
			return "", fmt.Errorf("set headers: %w", err)
		}
	}

	if err := page.Navigate(req.URL); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	return page.HTML()
}

func rodCookies(req source.Request) []*proto.NetworkCookieParam {
	var params []*proto.NetworkCookieParam
	for _, pair := range req.CookiePairs() {
		params = append(params, &proto.NetworkCookieParam{
			Name:  pair[0],
			Value: pair[1],
			URL:   cookieURL(req.URL),
		})
	}
	return params
}
