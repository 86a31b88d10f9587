package extract

import (
	"fmt"

	"github.com/liveurl/liveurl/room"
	"github.com/tidwall/gjson"
)

// apiRule locates the room inside a JSON API response.
type apiRule struct {
	// Room is the path of the room object.
	Room string
	// Anchor is the path of the anchor display name.
	Anchor string
	// Sessions, when set, is a list whose emptiness means the session uses an
	// unsupported playback format.
	Sessions string
}

var apiRules = map[Kind]apiRule{
	KindWebAPI: {
		Room:     "data.data.0",
		Anchor:   "data.user.nickname",
		Sessions: "data.data",
	},
	KindReflowAPI: {
		Room:   "data.room",
		Anchor: "data.room.owner.nickname",
	},
}

func extractAPI(payload string, rule apiRule) (room.Record, error) {
	if !gjson.Valid(payload) {
		return room.Failed(), fmt.Errorf("%w: response is not JSON", room.ErrExtractionFailed)
	}

	doc := gjson.Parse(payload)
	if !doc.Get("data").Exists() {
		return room.Failed(), fmt.Errorf("%w: response has no data", room.ErrExtractionFailed)
	}

	if rule.Sessions != "" {
		if sessions := doc.Get(rule.Sessions); !sessions.IsArray() || len(sessions.Array()) == 0 {
			return room.Failed(), fmt.Errorf("%w: no playable session (VR live)", room.ErrUnsupportedLiveFormat)
		}
	}

	obj := doc.Get(rule.Room)
	if !obj.IsObject() {
		return room.Failed(), fmt.Errorf("%w: no room object (VR live)", room.ErrUnsupportedLiveFormat)
	}

	anchor := doc.Get(rule.Anchor).String()
	if anchor == "" {
		return room.Failed(), fmt.Errorf("%w: anchor name not found", room.ErrExtractionFailed)
	}

	return buildRecord(obj, anchor, apiOrigin)
}

// apiOrigin reads the origin stream from the pull data embedded in stream_url.
// The URLs come from the first pull_datas entry when present, the codec always
// from the core SDK pull data.
func apiOrigin(streamURL gjson.Result) (origin, bool) {
	sdk := streamURL.Get("live_core_sdk_data")
	if !sdk.IsObject() {
		return origin{}, false
	}

	sdkStream := sdk.Get("pull_data.stream_data").String()

	streamData := sdkStream
	streamURL.Get("pull_datas").ForEach(func(_, entry gjson.Result) bool {
		if s := entry.Get("stream_data").String(); s != "" {
			streamData = s
		}
		return false
	})

	return originOf(
		gjson.Get(streamData, "data.origin.main"),
		gjson.Get(sdkStream, "data.origin.main.sdk_params"),
	)
}
