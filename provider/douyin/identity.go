package douyin

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/liveurl/liveurl/internal/cache"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	"github.com/liveurl/liveurl/where"
)

// Redirector follows redirects to the final URL.
type Redirector interface {
	FinalURL(ctx context.Context, req source.Request) (string, error)
}

var (
	reflowRoomRegex = regexp.MustCompile(`reflow/(\d+)`)
	secUserIDRegex  = regexp.MustCompile(`sec_user_id=([\w\-.]+)`)
	userPathRegex   = regexp.MustCompile(`/user/([^/?#]+)`)
	uniqueIDRegex   = regexp.MustCompile(`(?:uniqueId|unique_id)\\*":\\*"([^"\\]+)`)
)

const userPage = "https://www.douyin.com/user/"

// canonicalLifetime is how long share-link mappings are kept on disk.
const canonicalLifetime = 7 * 24 * time.Hour

// Identity maps share links to room identifiers and canonical room URLs.
type Identity struct {
	fetcher    source.Fetcher
	redirector Redirector
	canonicals *cache.Cacher[string, string]
}

// NewIdentity creates an identity resolver. A nil canonicals cache disables caching.
func NewIdentity(fetcher source.Fetcher, redirector Redirector, canonicals *cache.Cacher[string, string]) *Identity {
	return &Identity{
		fetcher:    fetcher,
		redirector: redirector,
		canonicals: canonicals,
	}
}

// NewCanonicalCache returns the on-disk share-link cache.
func NewCanonicalCache() *cache.Cacher[string, string] {
	return cache.New[string, string](
		where.Identities(),
		canonicalLifetime,
		strings.TrimSpace,
	)
}

// ResolveIdentity follows a share link to its reflow page and reads the room id and
// the anchor's sec_user_id from it.
func (i *Identity) ResolveIdentity(ctx context.Context, rawURL, proxy string) (source.Identity, error) {
	final, err := i.redirector.FinalURL(ctx, source.Request{URL: rawURL, Proxy: proxy, UserAgent: appUserAgent})
	if err != nil {
		return source.Identity{}, fmt.Errorf("follow share link: %w", err)
	}

	roomID := reflowRoomRegex.FindStringSubmatch(final)
	secUserID := secUserIDRegex.FindStringSubmatch(final)
	if roomID == nil || secUserID == nil {
		return source.Identity{}, fmt.Errorf("%w: %s does not lead to a live room", room.ErrUnsupportedURLKind, rawURL)
	}

	return source.Identity{RoomID: roomID[1], SecUserID: secUserID[1]}, nil
}

// CanonicalURL returns the live.douyin.com URL of the anchor behind rawURL.
// Links to a user profile are resolved through the profile's unique id.
// A room URL is already canonical and is returned as is.
func (i *Identity) CanonicalURL(ctx context.Context, rawURL, proxy string) (string, error) {
	if _, ok := webRID(rawURL); ok {
		return rawURL, nil
	}

	if i.canonicals != nil {
		if cached, ok := i.canonicals.Get(rawURL).Get(); ok {
			return cached, nil
		}
	}

	canonical, err := i.canonicalURL(ctx, rawURL, proxy)
	if err != nil {
		return "", err
	}

	if i.canonicals != nil {
		if err := i.canonicals.Set(rawURL, canonical); err != nil {
			log.Warnf("cache canonical url: %v", err)
		}
	}

	return canonical, nil
}

func (i *Identity) canonicalURL(ctx context.Context, rawURL, proxy string) (string, error) {
	final, err := i.redirector.FinalURL(ctx, source.Request{URL: rawURL, Proxy: proxy, UserAgent: pageUserAgent})
	if err != nil {
		return "", fmt.Errorf("follow share link: %w", err)
	}

	if rid, ok := webRID(final); ok {
		return liveOrigin + rid, nil
	}

	user := userPathRegex.FindStringSubmatch(final)
	if user == nil {
		return "", fmt.Errorf("%w: %s leads to neither a room nor a profile", room.ErrUnsupportedURLKind, rawURL)
	}

	secUserID, err := url.PathUnescape(user[1])
	if err != nil {
		secUserID = user[1]
	}

	html, err := i.fetcher.Fetch(ctx, source.Request{
		URL:       userPage + secUserID,
		Proxy:     proxy,
		UserAgent: pageUserAgent,
		Headers:   header("Referer", "https://www.douyin.com/", "Accept-Language", acceptLanguage),
	})
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", err)
	}

	matches := uniqueIDRegex.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no unique id on profile %s", room.ErrUnsupportedURLKind, secUserID)
	}

	return liveOrigin + matches[len(matches)-1][1], nil
}
