// Package provider maps room URLs to the platform that resolves them.
package provider

import (
	"net/url"
	"strings"

	"github.com/liveurl/liveurl/cookies"
	"github.com/liveurl/liveurl/internal/cache"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/provider/douyin"
	"github.com/liveurl/liveurl/resolver"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// HTTP fetches resources and follows redirects.
type HTTP interface {
	source.Fetcher
	douyin.Redirector
}

// Deps are the collaborators a platform's strategies are built from.
type Deps struct {
	HTTP     HTTP
	Renderer source.Renderer
	Signer   source.Signer
	// Identity overrides the platform's own identity resolver.
	Identity source.IdentityResolver
	// CacheIdentities persists share-link mappings on disk.
	CacheIdentities bool
}

// Provider represents a live platform.
type Provider struct {
	ID           string
	Name         string
	Hosts        []string
	UsesHeadless bool // The last strategy needs a browser.
	NewChain     func(Deps) *resolver.Chain
}

func (p *Provider) String() string {
	return p.Name
}

// Handles reports whether rawURL belongs to the provider.
func (p *Provider) Handles(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}

	return lo.SomeBy(p.Hosts, func(h string) bool {
		return host == h || strings.HasSuffix(host, "."+h)
	})
}

// Builtins returns the supported platforms.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:           douyin.ID,
			Name:         douyin.Name,
			Hosts:        douyin.Hosts,
			UsesHeadless: true,
			NewChain: func(d Deps) *resolver.Chain {
				identity := d.Identity
				if identity == nil {
					var canonicals *cache.Cacher[string, string]
					if d.CacheIdentities {
						canonicals = douyin.NewCanonicalCache()
					}
					identity = douyin.NewIdentity(d.HTTP, d.HTTP, canonicals)
				}

				return douyin.NewChain(douyin.Options{
					Fetcher:  d.HTTP,
					Renderer: d.Renderer,
					Signer:   d.Signer,
					Identity: identity,
					Cookie: func() string {
						return cookies.Lookup(douyin.ID, viper.GetString(key.DouyinCookie))
					},
				})
			},
		},
	}
}

// Match returns the provider resolving rawURL.
func Match(rawURL string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.Handles(rawURL)
	})
}

// Get finds a provider by ID.
func Get(id string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.ID == id
	})
}

// IDs returns the IDs of every provider.
func IDs() []string {
	return lo.Map(Builtins(), func(p *Provider, _ int) string {
		return p.ID
	})
}

func hostOf(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return strings.ToLower(u.Hostname())
}
