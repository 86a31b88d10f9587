// Package playlist ranks the renditions of an HLS master playlist by bandwidth.
package playlist

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var bandwidthRegex = regexp.MustCompile(`BANDWIDTH=(\d+)`)

// Rank returns the rendition URLs of body, highest bandwidth first.
//
// URLs are the lines starting with "https://", or, when there are none, the lines
// ending in "m3u8". Bandwidths are paired with URLs positionally, in document order.
// A URL without a paired bandwidth ranks as 0. Ties keep their original order.
func Rank(body string) []string {
	return lo.Map(Variants(body), func(v room.Variant, _ int) string {
		return v.URL
	})
}

// Variants is Rank with the bandwidth each URL was ranked by.
func Variants(body string) []room.Variant {
	urls := collectURLs(body)
	if len(urls) == 0 {
		return []room.Variant{}
	}

	bandwidths := bandwidthRegex.FindAllStringSubmatch(body, -1)

	// a repeated URL takes the bandwidth of its last pairing
	byURL := make(map[string]int64, len(urls))
	for i := 0; i < len(urls) && i < len(bandwidths); i++ {
		bw, err := strconv.ParseInt(bandwidths[i][1], 10, 64)
		if err != nil {
			continue
		}
		byURL[urls[i]] = bw
	}

	variants := lo.Map(urls, func(u string, _ int) room.Variant {
		return room.Variant{URL: u, Bandwidth: byURL[u]}
	})

	slices.SortStableFunc(variants, func(a, b room.Variant) int {
		switch {
		case a.Bandwidth > b.Bandwidth:
			return -1
		case a.Bandwidth < b.Bandwidth:
			return 1
		default:
			return 0
		}
	})

	return variants
}

func collectURLs(body string) []string {
	lines := strings.Split(body, "\n")

	var urls []string
	for _, line := range lines {
		if strings.HasPrefix(line, "https://") {
			urls = append(urls, strings.TrimSpace(line))
		}
	}

	if len(urls) > 0 {
		return urls
	}

	for _, line := range lines {
		if line = strings.TrimSpace(line); strings.HasSuffix(line, "m3u8") {
			urls = append(urls, line)
		}
	}

	return urls
}

// FetchRanked downloads the master playlist at req.URL and ranks it.
func FetchRanked(ctx context.Context, fetcher source.Fetcher, req source.Request) ([]string, error) {
	variants, err := FetchVariants(ctx, fetcher, req)
	if err != nil {
		return nil, err
	}

	return lo.Map(variants, func(v room.Variant, _ int) string {
		return v.URL
	}), nil
}

// FetchVariants downloads the master playlist at req.URL and returns its ranked variants.
func FetchVariants(ctx context.Context, fetcher source.Fetcher, req source.Request) ([]room.Variant, error) {
	body, err := fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist: %w", err)
	}

	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("fetch playlist: %w: empty body", room.ErrRiskControl)
	}

	return Variants(body), nil
}
