package network

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/source"
)

// maxPlaylist caps how much of a playlist a probe reads.
const maxPlaylist = 1 << 20

// Probe reports whether streamURL answers with 2xx. HLS playlists must also decode.
// Progressive streams are not read past the response headers.
func (c *Client) Probe(ctx context.Context, streamURL, proxy string) bool {
	err := c.do(ctx, source.Request{URL: streamURL, Proxy: proxy}, func(resp *http.Response) error {
		if !isPlaylist(streamURL) {
			return nil
		}

		_, _, err := m3u8.DecodeFrom(bufio.NewReader(io.LimitReader(resp.Body, maxPlaylist)), false)
		return err
	})

	if err != nil {
		log.WithFields(log.Fields{"url": streamURL}).Debugf("probe failed: %v", err)
		return false
	}

	return true
}

func isPlaylist(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.Contains(rawURL, ".m3u8")
	}
	return strings.HasSuffix(u.Path, ".m3u8")
}
