package selector

import "github.com/liveurl/liveurl/room"

// SelectList picks the entry of the requested quality from a flat play-URL list.
// URLType decides which URLs are set; the record URL is always the list-selected one.
func SelectList(rec room.ListRecord, quality string, opts Options) room.PlaybackResult {
	if !rec.IsLive {
		return room.PlaybackResult{
			AnchorName: rec.AnchorName,
			Title:      rec.Title,
		}
	}

	label, tier := room.ParseQuality(quality)
	entry := Pad(rec.PlayURLs, room.PlayEntry{})[tier]

	result := room.PlaybackResult{
		AnchorName: rec.AnchorName,
		IsLive:     true,
		Title:      rec.Title,
		Quality:    label,
	}

	switch opts.URLType {
	case URLTypeAll:
		m3u8URL := entry.Lookup(opts.HLSKey)
		flvURL := entry.Lookup(opts.FLVKey)
		result.M3U8URL, result.FLVURL = m3u8URL, flvURL
		if opts.Spec {
			result.M3U8URL, result.FLVURL = rec.M3U8URL, rec.FLVURL
		}
		result.RecordURL = m3u8URL
	case URLTypeFLV:
		flvURL := entry.Lookup(opts.FLVKey)
		result.FLVURL = flvURL
		result.RecordURL = flvURL
	default:
		m3u8URL := entry.Lookup(opts.HLSKey)
		result.M3U8URL = m3u8URL
		if opts.Spec {
			result.M3U8URL = rec.M3U8URL
		}
		result.RecordURL = m3u8URL
	}

	return result
}
