// Package selector picks one playback URL set out of a resolved room.
package selector

import (
	"context"

	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/source"
)

// URLType selects which protocol a caller wants.
type URLType string

const (
	URLTypeM3U8 URLType = "m3u8"
	URLTypeFLV  URLType = "flv"
	URLTypeAll  URLType = "all"
)

// URLTypes lists the accepted URL types.
func URLTypes() []string {
	return []string{string(URLTypeM3U8), string(URLTypeFLV), string(URLTypeAll)}
}

// Options are the per-call selection settings.
type Options struct {
	URLType URLType
	Proxy   string

	// Spec forces the record's top-level URLs over the list-selected ones (list mode only).
	Spec bool
	// HLSKey and FLVKey route to a named field of the selected entry (list mode only).
	HLSKey string
	FLVKey string
}

// Selector selects playback URLs, checking the chosen one with a liveness probe.
type Selector struct {
	prober source.Prober
}

// New returns a selector. A nil prober disables the liveness check.
func New(prober source.Prober) *Selector {
	return &Selector{prober: prober}
}

// Select picks the URLs of the requested quality.
//
// Both ladders are padded to every tier by repeating their last entry. When the
// selected URL fails the probe, the adjacent tier is used instead: the next lower
// one, or the one above for the lowest tier. There is exactly one such shift.
// The reported quality is always the requested one.
func (s *Selector) Select(ctx context.Context, rec room.Record, quality string, opts Options) room.PlaybackResult {
	result := room.PlaybackResult{
		AnchorName: rec.AnchorName,
		Title:      rec.Title,
	}

	if !rec.IsLive() {
		return result
	}

	label, tier := room.ParseQuality(quality)
	m3u8List := Pad(rec.Ladder(room.HLS).URLs(), "")
	flvList := Pad(rec.Ladder(room.FLV).URLs(), "")

	index := int(tier)
	m3u8URL, flvURL := m3u8List[index], flvList[index]

	probed := m3u8URL
	if probed == "" {
		probed = flvURL
	}

	if s.prober != nil && probed != "" && !s.prober.Probe(ctx, probed, opts.Proxy) {
		shifted := Shift(index)
		log.WithFields(log.Fields{
			"anchor": rec.AnchorName,
			"from":   index,
			"to":     shifted,
		}).Info("selected stream unreachable, shifting tier")

		index = shifted
		m3u8URL, flvURL = m3u8List[index], flvList[index]
	}

	result.IsLive = true
	result.Quality = label
	result.M3U8URL = m3u8URL
	result.FLVURL = flvURL
	result.RecordURL = recordURL(m3u8URL, flvURL, opts.URLType)

	return result
}

// Shift returns the tier tried after index fails its probe.
func Shift(index int) int {
	if index < room.TierCount-1 {
		return index + 1
	}
	return index - 1
}

// Pad extends list to one entry per tier by repeating its last entry.
// An empty list is padded with empty.
func Pad[T any](list []T, empty T) []T {
	padded := make([]T, len(list), max(len(list), room.TierCount))
	copy(padded, list)

	for len(padded) < room.TierCount {
		last := empty
		if len(padded) > 0 {
			last = padded[len(padded)-1]
		}
		padded = append(padded, last)
	}

	return padded
}

func recordURL(m3u8URL, flvURL string, urlType URLType) string {
	first, second := m3u8URL, flvURL
	if urlType == URLTypeFLV {
		first, second = flvURL, m3u8URL
	}

	if first != "" {
		return first
	}
	return second
}
