// Package source defines the collaborators stream resolution draws upstream data from.
//
// Implementations live in network, render, signer and the platform packages; the
// resolution engine only ever sees these interfaces.
package source

import (
	"context"
	"errors"
)

// Fetcher retrieves a URL body. An empty body is not an error here; strategies treat it
// as a risk-control block.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (string, error)
}

// Renderer loads a URL in a browser and returns the rendered HTML.
// It must release every browser process it starts before returning, including on cancellation.
type Renderer interface {
	Render(ctx context.Context, req Request) (string, error)
}

// Signer computes the anti-bot signature for a query string.
type Signer interface {
	Sign(query, userAgent string) (string, error)
}

// Identity holds the platform-internal identifiers of a room.
type Identity struct {
	RoomID    string
	SecUserID string
}

// IdentityResolver maps share links to platform identifiers.
// Both methods fail with room.ErrUnsupportedURLKind when the link cannot be mapped.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, rawURL, proxy string) (Identity, error)
	CanonicalURL(ctx context.Context, rawURL, proxy string) (string, error)
}

// Prober checks whether a candidate playback URL is reachable.
type Prober interface {
	Probe(ctx context.Context, url, proxy string) bool
}

// ErrNoRenderer is returned by NoRenderer.
var ErrNoRenderer = errors.New("no browser renderer configured")

// NoRenderer fails every render, turning the rendered-page strategy into a skipped step.
type NoRenderer struct{}

func (NoRenderer) Render(context.Context, Request) (string, error) {
	return "", ErrNoRenderer
}

// AlwaysLive is a Prober that never rejects a URL.
type AlwaysLive struct{}

func (AlwaysLive) Probe(context.Context, string, string) bool { return true }
