// Package render loads room pages in a real browser for the last-resort extraction strategy.
//
// Every call launches its own browser with the call's proxy, cookies and user agent,
// and tears it down before returning.
package render

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/source"
	"github.com/spf13/viper"
)

// Backend names.
const (
	BackendRod      = "rod"
	BackendChromedp = "chromedp"
)

// Backends lists the available backends.
func Backends() []string {
	return []string{BackendRod, BackendChromedp}
}

// Options configure a renderer.
type Options struct {
	Headless    bool
	BrowserPath string
	// Timeout bounds one render, browser start-up included.
	Timeout time.Duration
}

// New returns the renderer of the named backend.
func New(backend string, opts Options) (source.Renderer, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	switch backend {
	case BackendRod, "":
		return &Rod{opts: opts}, nil
	case BackendChromedp:
		return &Chromedp{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q, available: %v", backend, Backends())
	}
}

// FromConfig returns the renderer configured by the render.* settings, or a renderer
// that always fails when the setting is invalid.
func FromConfig() source.Renderer {
	r, err := New(viper.GetString(key.RenderBackend), Options{
		Headless:    viper.GetBool(key.RenderHeadless),
		BrowserPath: viper.GetString(key.RenderBrowserPath),
		// a render covers browser start-up and a full page load
		Timeout: 2 * config.Timeout(),
	})
	if err != nil {
		return source.NoRenderer{}
	}
	return r
}

func withTimeout(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opts.Timeout)
}

// cookieURL returns the origin cookies for rawURL are scoped to.
func cookieURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host + "/"
}
