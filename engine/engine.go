// Package engine is the library boundary of liveurl: resolve a room, rank a
// master playlist and select a playback URL set.
package engine

import (
	"context"

	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/network"
	"github.com/liveurl/liveurl/playlist"
	"github.com/liveurl/liveurl/provider"
	"github.com/liveurl/liveurl/render"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/selector"
	"github.com/liveurl/liveurl/signer"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Deps are the collaborators an engine is built from.
type Deps struct {
	HTTP     provider.HTTP
	Renderer source.Renderer
	Signer   source.Signer
	// Prober checks selected URLs. Nil disables the check.
	Prober   source.Prober
	Identity source.IdentityResolver

	CacheIdentities bool
	// Providers defaults to provider.Builtins.
	Providers []*provider.Provider
}

// Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	deps      Deps
	providers []*provider.Provider
	selector  *selector.Selector
}

// New creates an engine.
func New(deps Deps) *Engine {
	if deps.Renderer == nil {
		deps.Renderer = source.NoRenderer{}
	}
	if deps.Signer == nil {
		deps.Signer = signer.Noop{}
	}

	providers := deps.Providers
	if len(providers) == 0 {
		providers = provider.Builtins()
	}

	return &Engine{
		deps:      deps,
		providers: providers,
		selector:  selector.New(deps.Prober),
	}
}

// Default creates an engine wired from configuration.
func Default() *Engine {
	client := network.FromConfig()

	deps := Deps{
		HTTP:            client,
		Renderer:        render.FromConfig(),
		Signer:          signer.FromConfig(),
		CacheIdentities: viper.GetBool(key.IdentityCache),
	}

	if viper.GetBool(key.ProbeEnabled) {
		deps.Prober = client
	}

	return New(deps)
}

// Providers returns the platforms the engine resolves.
func (e *Engine) Providers() []*provider.Provider {
	return e.providers
}

// Match returns the provider handling rawURL.
func (e *Engine) Match(rawURL string) (*provider.Provider, bool) {
	return lo.Find(e.providers, func(p *provider.Provider) bool {
		return p.Handles(rawURL)
	})
}

// ResolveRoom resolves rawURL into a room record.
// Failures are logged and degrade to room.Failed().
func (e *Engine) ResolveRoom(ctx context.Context, rawURL, proxy, cookies string) room.Record {
	p, ok := e.Match(rawURL)
	if !ok {
		log.Warnf("no provider handles %s", rawURL)
		return room.Failed()
	}

	chain := p.NewChain(provider.Deps{
		HTTP:            e.deps.HTTP,
		Renderer:        e.deps.Renderer,
		Signer:          e.deps.Signer,
		Identity:        e.deps.Identity,
		CacheIdentities: e.deps.CacheIdentities,
	})

	return chain.Resolve(ctx, room.Reference{
		URL:     rawURL,
		Proxy:   proxy,
		Cookies: cookies,
	})
}

// RankPlaylist orders the variants of a master playlist by bandwidth, highest first.
func (e *Engine) RankPlaylist(body string) []string {
	return playlist.Rank(body)
}

// FetchRanked downloads a master playlist and ranks it.
func (e *Engine) FetchRanked(ctx context.Context, playlistURL, proxy string) ([]string, error) {
	return playlist.FetchRanked(ctx, e.deps.HTTP, source.Request{
		URL:   playlistURL,
		Proxy: proxy,
	})
}

// FetchVariants downloads a master playlist and returns its ranked variants.
func (e *Engine) FetchVariants(ctx context.Context, playlistURL, proxy string) ([]room.Variant, error) {
	return playlist.FetchVariants(ctx, e.deps.HTTP, source.Request{
		URL:   playlistURL,
		Proxy: proxy,
	})
}

// SelectStream picks the playback URLs of the requested quality.
func (e *Engine) SelectStream(ctx context.Context, rec room.Record, quality string, urlType selector.URLType, opts selector.Options) room.PlaybackResult {
	opts.URLType = urlType
	return e.selector.Select(ctx, rec, quality, opts)
}

// SelectList picks from a flat play-URL list.
func (e *Engine) SelectList(rec room.ListRecord, quality string, urlType selector.URLType, opts selector.Options) room.PlaybackResult {
	opts.URLType = urlType
	return selector.SelectList(rec, quality, opts)
}
