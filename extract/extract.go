// Package extract turns raw upstream payloads into normalized room records.
//
// Extraction is pure: payloads are fetched elsewhere and handed in as text.
// Payload shapes are described by rule tables so a new upstream surface is a new
// table entry rather than new control flow.
package extract

import (
	"fmt"
	"strings"

	"github.com/liveurl/liveurl/room"
	"github.com/tidwall/gjson"
)

// Kind identifies the upstream surface a payload came from.
type Kind int

const (
	// KindWebAPI is the desktop web room API.
	KindWebAPI Kind = iota
	// KindReflowAPI is the app share-link reflow API.
	KindReflowAPI
	// KindPage is a server-rendered room page with embedded, escaped JSON.
	KindPage
)

func (k Kind) String() string {
	switch k {
	case KindWebAPI:
		return "web-api"
	case KindReflowAPI:
		return "reflow-api"
	case KindPage:
		return "page"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// statusLive is the upstream status of a broadcasting room. Every other status,
// 4 (ended) included, reads as offline.
const statusLive = 2

// OriginTag is the quality tag of the separately published source-quality stream.
const OriginTag = "ORIGIN"

// Extract normalizes payload into a record.
//
// A blank payload is a risk-control block. Ended rooms come back offline with no
// streams and no error.
func Extract(payload string, kind Kind) (room.Record, error) {
	if strings.TrimSpace(payload) == "" {
		return room.Failed(), fmt.Errorf("%s: %w: empty payload", kind, room.ErrRiskControl)
	}

	var (
		rec room.Record
		err error
	)

	switch kind {
	case KindWebAPI, KindReflowAPI:
		rec, err = extractAPI(payload, apiRules[kind])
	case KindPage:
		rec, err = extractPage(payload)
	default:
		err = fmt.Errorf("%w: unknown payload kind %d", room.ErrExtractionFailed, int(kind))
	}

	if err != nil {
		return room.Failed(), fmt.Errorf("%s: %w", kind, err)
	}

	return rec, nil
}

// origin is a source-quality stream published next to the regular ladder.
type origin struct {
	HLS   string
	FLV   string
	Codec string
}

// buildRecord normalizes a room object. findOrigin locates an origin stream to merge
// ahead of the regular ladder.
func buildRecord(obj gjson.Result, anchor string, findOrigin func(streamURL gjson.Result) (origin, bool)) (room.Record, error) {
	rec := room.Record{
		RoomID:     obj.Get("id_str").String(),
		AnchorName: anchor,
		Title:      obj.Get("title").String(),
		Status:     room.StatusOffline,
	}

	if obj.Get("status").Int() != statusLive {
		return rec, nil
	}

	streamURL := obj.Get("stream_url")
	if !streamURL.Exists() {
		return room.Failed(), fmt.Errorf("%w: live room publishes no stream_url", room.ErrExtractionFailed)
	}

	hls := ladderOf(streamURL.Get("hls_pull_url_map"))
	flv := ladderOf(streamURL.Get("flv_pull_url"))

	if o, ok := findOrigin(streamURL); ok {
		if o.HLS != "" {
			hls = hls.WithFront(OriginTag, withCodec(o.HLS, o.Codec))
		}
		if o.FLV != "" {
			flv = flv.WithFront(OriginTag, withCodec(o.FLV, o.Codec))
		}
	}

	if hls.Len() == 0 && flv.Len() == 0 {
		return room.Failed(), fmt.Errorf("%w: live room has an empty quality ladder", room.ErrExtractionFailed)
	}

	rec.Status = room.StatusLive
	rec.Streams = map[room.Protocol]*room.Ladder{
		room.HLS: hls,
		room.FLV: flv,
	}

	return rec, nil
}

// ladderOf reads a tag to URL object in document order.
func ladderOf(obj gjson.Result) *room.Ladder {
	ladder := room.NewLadder()
	if !obj.IsObject() {
		return ladder
	}

	obj.ForEach(func(tag, url gjson.Result) bool {
		if u := url.String(); u != "" {
			ladder.Set(tag.String(), u)
		}
		return true
	})

	return ladder
}

func withCodec(url, codec string) string {
	sep := "&"
	if !strings.Contains(url, "?") {
		sep = "?"
	}
	return url + sep + "codec=" + codec
}

// vcodec reads the video codec from sdk_params, which upstream publishes either as
// an object or as a JSON-encoded string.
func vcodec(sdkParams gjson.Result) string {
	if sdkParams.Type == gjson.String {
		return gjson.Get(sdkParams.String(), "VCodec").String()
	}
	return sdkParams.Get("VCodec").String()
}

func originOf(main gjson.Result, codecFrom gjson.Result) (origin, bool) {
	if !main.IsObject() {
		return origin{}, false
	}

	o := origin{
		HLS:   main.Get("hls").String(),
		FLV:   main.Get("flv").String(),
		Codec: vcodec(codecFrom),
	}

	return o, o.HLS != "" || o.FLV != ""
}
