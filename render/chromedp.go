package render

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/liveurl/liveurl/source"
)

// Chromedp renders pages with a browser driven by chromedp.
type Chromedp struct {
	opts Options
}

func (c *Chromedp) Render(ctx context.Context, req source.Request) (string, error) {
	ctx, cancel := withTimeout(ctx, c.opts)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", c.opts.Headless))
	if c.opts.BrowserPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.BrowserPath))
	}
	if req.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(req.Proxy))
	}
	if req.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(req.UserAgent))
	}

	// cancelling the allocator context kills the browser and waits for it to exit
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	headers := network.Headers{}
	for k, v := range extraHeaders(req) {
		headers[k] = v
	}

	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(req.URL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp: %w", err)
	}

	return html, nil
}
