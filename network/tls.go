package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
	"golang.org/x/net/proxy"
)

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func dialDirect(timeout time.Duration) dialFunc {
	return (&net.Dialer{Timeout: timeout}).DialContext
}

// tlsTransports are an HTTP/2 and an HTTP/1.1 transport sharing a Chrome-like TLS dialer.
// Servers negotiating h2 are served by the first; the second is the fallback.
type tlsTransports struct {
	dial dialFunc

	h2     *http2.Transport
	h2Once sync.Once
	h1     *http.Transport
	h1Once sync.Once
}

func newTLSTransports(dial dialFunc) *tlsTransports {
	return &tlsTransports{dial: dial}
}

func (t *tlsTransports) h2Transport() *http2.Transport {
	t.h2Once.Do(func() {
		t.h2 = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, t.dial, network, addr, "h2", "http/1.1")
			},
		}
	})
	return t.h2
}

func (t *tlsTransports) h1Transport() *http.Transport {
	t.h1Once.Do(func() {
		t.h1 = &http.Transport{
			DialContext: t.dial,
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, t.dial, network, addr, "http/1.1")
			},
			IdleConnTimeout: 30 * time.Second,
		}
	})
	return t.h1
}

func (t *tlsTransports) closeIdle() {
	if t.h2 != nil {
		t.h2.CloseIdleConnections()
	}
	if t.h1 != nil {
		t.h1.CloseIdleConnections()
	}
}

// dialTLS opens a TLS connection with a Chrome 120 ClientHello advertising protos.
func dialTLS(ctx context.Context, dial dialFunc, network, addr string, protos ...string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dial(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_120)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls spec: %w", err)
	}
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = protos
		}
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, utls.HelloCustom)

	if err := tlsConn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls preset: %w", err)
	}

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// route is the set of transports to try for one request, in order.
type route struct {
	transports []http.RoundTripper
	release    func()
}

// route picks transports for target through proxyURL.
//
// https targets use the fingerprinted transports directly or through a SOCKS5 proxy.
// HTTP proxies and plain http targets use the standard transport.
func (c *Client) route(target *url.URL, proxyURL string) (route, error) {
	if proxyURL == "" {
		if target.Scheme == "https" && c.opts.Fingerprint {
			return route{
				transports: []http.RoundTripper{c.direct.h2Transport(), c.direct.h1Transport()},
				release:    func() {},
			}, nil
		}
		return route{transports: []http.RoundTripper{c.plain}, release: func() {}}, nil
	}

	p, err := url.Parse(proxyURL)
	if err != nil || p.Host == "" {
		return route{}, fmt.Errorf("invalid proxy %q", proxyURL)
	}

	switch p.Scheme {
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(p, &net.Dialer{Timeout: c.opts.Timeout})
		if err != nil {
			return route{}, fmt.Errorf("proxy %s: %w", hostOf(proxyURL), err)
		}
		dial := contextDialer(dialer)

		if target.Scheme == "https" && c.opts.Fingerprint {
			t := newTLSTransports(dial)
			return route{
				transports: []http.RoundTripper{t.h2Transport(), t.h1Transport()},
				release:    t.closeIdle,
			}, nil
		}

		t := newTransport()
		t.Proxy = nil
		t.DialContext = dial
		return route{transports: []http.RoundTripper{t}, release: t.CloseIdleConnections}, nil

	case "http", "https":
		t := newTransport()
		t.Proxy = http.ProxyURL(p)
		return route{transports: []http.RoundTripper{t}, release: t.CloseIdleConnections}, nil

	default:
		return route{}, fmt.Errorf("unsupported proxy scheme %q", p.Scheme)
	}
}

func contextDialer(d proxy.Dialer) dialFunc {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}
