// Package room defines the normalized data model shared by every stage of stream resolution.
package room

import "github.com/invopop/jsonschema"

// Reference is the immutable input of a resolution: a room URL plus optional proxy and cookie override.
type Reference struct {
	URL     string `json:"url"`
	Proxy   string `json:"proxy,omitempty"`
	Cookies string `json:"-"`
}

// WithURL returns a copy of the reference pointing at another URL.
func (r Reference) WithURL(url string) Reference {
	r.URL = url
	return r
}

// Status is the broadcast state of a room.
// The zero value is StatusUnsupported so an empty Record reads as a failed resolution.
type Status int

const (
	StatusUnsupported Status = iota
	StatusLive
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusOffline:
		return "offline"
	default:
		return "unsupported"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// JSONSchema describes the encoded status.
func (Status) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: []any{StatusLive.String(), StatusOffline.String(), StatusUnsupported.String()},
	}
}

// Protocol is a playback protocol a ladder is published for.
type Protocol string

const (
	HLS Protocol = "hls"
	FLV Protocol = "flv"
)

// Record is the normalized result of resolving a room.
// An empty AnchorName means resolution failed.
type Record struct {
	Platform   string               `json:"platform,omitempty"`
	RoomID     string               `json:"room_id,omitempty"`
	AnchorName string               `json:"anchor_name"`
	Status     Status               `json:"status"`
	Title      string               `json:"title,omitempty"`
	Streams    map[Protocol]*Ladder `json:"streams,omitempty"`
}

// Failed is the record every unsuccessful resolution degrades to.
func Failed() Record {
	return Record{Status: StatusUnsupported}
}

// IsLive reports whether the room is broadcasting.
func (r Record) IsLive() bool {
	return r.Status == StatusLive
}

// OK reports whether resolution produced a room at all, live or not.
func (r Record) OK() bool {
	return r.AnchorName != "" && r.Status != StatusUnsupported
}

// Ladder returns the quality ladder for a protocol, never nil.
func (r Record) Ladder(p Protocol) *Ladder {
	if l, ok := r.Streams[p]; ok && l != nil {
		return l
	}
	return NewLadder()
}

// HasStreams reports whether at least one protocol publishes a URL.
func (r Record) HasStreams() bool {
	for _, l := range r.Streams {
		if l != nil && l.Len() > 0 {
			return true
		}
	}
	return false
}

// PlayEntry is one tier of a flat play-URL list. Fields holds named sub-URLs
// for platforms that publish more than one URL per tier.
type PlayEntry struct {
	URL    string            `json:"url,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Lookup returns the entry URL for an empty key, otherwise the named field.
func (e PlayEntry) Lookup(key string) string {
	if key == "" {
		return e.URL
	}
	return e.Fields[key]
}

// ListRecord is the record shape of platforms that publish an ordered list of
// per-tier entries instead of a protocol to quality mapping.
type ListRecord struct {
	AnchorName string      `json:"anchor_name"`
	IsLive     bool        `json:"is_live"`
	Title      string      `json:"title,omitempty"`
	PlayURLs   []PlayEntry `json:"play_url_list,omitempty"`
	M3U8URL    string      `json:"m3u8_url,omitempty"`
	FLVURL     string      `json:"flv_url,omitempty"`
}

// PlaybackResult is what callers hand to a player or recorder.
type PlaybackResult struct {
	AnchorName string `json:"anchor_name"`
	IsLive     bool   `json:"is_live"`
	Title      string `json:"title,omitempty"`
	Quality    string `json:"quality,omitempty"`
	M3U8URL    string `json:"m3u8_url,omitempty"`
	FLVURL     string `json:"flv_url,omitempty"`
	RecordURL  string `json:"record_url,omitempty"`
}

// Variant is one rendition of an HLS master playlist.
type Variant struct {
	URL       string `json:"url"`
	Bandwidth int64  `json:"bandwidth"`
}
