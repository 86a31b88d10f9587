// Package network implements the HTTP collaborators: page and API fetches, redirect
// resolution and stream liveness probes.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/source"
	"github.com/spf13/viper"
)

// maxBody caps how much of a response is read into memory.
const maxBody = 16 << 20

// Options configure a Client.
type Options struct {
	Timeout time.Duration
	// Fingerprint dials https hosts with a Chrome TLS ClientHello.
	Fingerprint bool
}

// Client fetches upstream resources. Every call carries its own proxy, cookies and
// headers; the client itself only holds reusable direct-connection transports.
type Client struct {
	opts   Options
	direct *tlsTransports
	plain  *http.Transport
}

// New creates a client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		opts:   opts,
		direct: newTLSTransports(dialDirect(opts.Timeout)),
		plain:  newTransport(),
	}
}

// FromConfig creates a client from the network.* settings.
func FromConfig() *Client {
	return New(Options{
		Timeout:     config.Timeout(),
		Fingerprint: viper.GetBool(key.NetworkFingerprint),
	})
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Status)
}

// Fetch returns the body of req.URL. An empty body is returned as is.
func (c *Client) Fetch(ctx context.Context, req source.Request) (string, error) {
	var body string
	err := c.do(ctx, req, func(resp *http.Response) error {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		body = string(data)
		return nil
	})

	return body, err
}

// FinalURL follows redirects from req.URL and returns where they end.
func (c *Client) FinalURL(ctx context.Context, req source.Request) (string, error) {
	var final string
	err := c.do(ctx, req, func(resp *http.Response) error {
		final = resp.Request.URL.String()
		return nil
	})

	return final, err
}

// do sends a GET for req and hands a 2xx response to handle.
func (c *Client) do(ctx context.Context, req source.Request, handle func(*http.Response) error) error {
	target, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	r, err := c.route(target, req.Proxy)
	if err != nil {
		return err
	}
	defer r.release()

	header := defaultHeader()
	for k, v := range req.Header() {
		header[k] = v
	}

	var resp *http.Response
	for i, rt := range r.transports {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header = header.Clone()

		client := &http.Client{Timeout: c.opts.Timeout, Transport: rt}
		resp, err = client.Do(httpReq)
		if err == nil {
			break
		}

		// the next transport only helps with protocol negotiation failures
		if ctx.Err() != nil || i == len(r.transports)-1 {
			return fmt.Errorf("request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: req.URL, Status: resp.StatusCode}
	}

	return handle(resp)
}

func defaultHeader() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", constant.UserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "zh-CN,zh;q=0.8,en-US;q=0.5,en;q=0.3")
	return h
}

// newTransport returns a tuned standard transport.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// hostOf returns the scheme-less host of a proxy URL for display.
func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return strings.TrimSpace(raw)
}
