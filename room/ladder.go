package room

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Ladder maps quality tags to URLs for one protocol.
// Insertion order is significant: it is the fallback order used by the quality selector.
type Ladder struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewLadder returns an empty ladder.
func NewLadder() *Ladder {
	return &Ladder{m: orderedmap.New[string, string]()}
}

// Set stores url under tag. An existing tag keeps its position.
func (l *Ladder) Set(tag, url string) *Ladder {
	l.m.Set(tag, url)
	return l
}

// Get returns the URL published for tag.
func (l *Ladder) Get(tag string) (string, bool) {
	if l == nil {
		return "", false
	}
	return l.m.Get(tag)
}

// Len returns the number of published tags.
func (l *Ladder) Len() int {
	if l == nil {
		return 0
	}
	return l.m.Len()
}

// Tags returns the quality tags in stored order.
func (l *Ladder) Tags() []string {
	if l == nil {
		return nil
	}
	tags := make([]string, 0, l.m.Len())
	for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
		tags = append(tags, pair.Key)
	}
	return tags
}

// URLs returns the URLs in stored order.
func (l *Ladder) URLs() []string {
	if l == nil {
		return nil
	}
	urls := make([]string, 0, l.m.Len())
	for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
		urls = append(urls, pair.Value)
	}
	return urls
}

// WithFront builds a new ladder holding tag first, followed by every entry of l
// whose tag is not already present. l is left untouched.
func (l *Ladder) WithFront(tag, url string) *Ladder {
	merged := NewLadder().Set(tag, url)
	if l == nil {
		return merged
	}
	for pair := l.m.Oldest(); pair != nil; pair = pair.Next() {
		if _, present := merged.m.Get(pair.Key); present {
			continue
		}
		merged.m.Set(pair.Key, pair.Value)
	}
	return merged
}

// MarshalJSON keeps tag order in the encoded object.
func (l *Ladder) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return l.m.MarshalJSON()
}

// UnmarshalJSON decodes an object, preserving key order.
func (l *Ladder) UnmarshalJSON(data []byte) error {
	if l.m == nil {
		l.m = orderedmap.New[string, string]()
	}
	return l.m.UnmarshalJSON(data)
}

// JSONSchema describes the encoded ladder: quality tags mapped to URLs.
func (Ladder) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Quality tag to URL, in fallback order",
		AdditionalProperties: &jsonschema.Schema{Type: "string"},
	}
}
