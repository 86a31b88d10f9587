package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/liveurl/liveurl/room"
	"github.com/tidwall/gjson"
)

// islandRules bracket the embedded room state, tried in order.
var islandRules = []*regexp.Regexp{
	regexp.MustCompile(`(\{\\"state\\":.*?)]\\n"]\)`),
	regexp.MustCompile(`(\{\\"common\\":.*?)]\\n"]\)</script><div hidden`),
}

var (
	roomStoreRegex = regexp.MustCompile(`(?s)"roomStore":(.*?),"linkmicStore"`)
	nicknameRegex  = regexp.MustCompile(`(?s)"nickname":"(.*?)","avatar_thumb`)
)

// roomStoreCut is where the room store is truncated before it is closed back into an object.
const (
	roomStoreCut   = `,"has_commerce_goods"`
	roomStoreClose = `}}}`
)

// pageOriginRule finds the origin stream in a page.
type pageOriginRule struct {
	name string
	find func(html string, orientation int64) (gjson.Result, bool)
}

var (
	originIslandRegex   = regexp.MustCompile(`"(\{\\"common\\":.*?)"]\)</script><script nonce=`)
	originFragmentRegex = regexp.MustCompile(`(?s)"origin":\{"main":(.*?),"dash"`)
)

// pageOriginRules are tried in order, the first hit wins.
var pageOriginRules = []pageOriginRule{
	{
		// per-orientation stream islands: landscape first, portrait second
		name: "island",
		find: func(html string, orientation int64) (gjson.Result, bool) {
			islands := originIslandRegex.FindAllStringSubmatch(html, -1)
			idx := 1
			if orientation == 1 {
				idx = 0
			}
			if idx >= len(islands) {
				return gjson.Result{}, false
			}

			island := replaceSeq(islands[idx][1], `\`, "", `"{`, "{", `}"`, "}", "u0026", "&")
			main := gjson.Get(island, "data.origin.main")
			return main, main.IsObject()
		},
	},
	{
		name: "fragment",
		find: func(html string, _ int64) (gjson.Result, bool) {
			m := originFragmentRegex.FindStringSubmatch(unescape(html))
			if m == nil {
				return gjson.Result{}, false
			}

			fragment := m[1] + "}"
			if !gjson.Valid(fragment) {
				return gjson.Result{}, false
			}
			return gjson.Parse(fragment), true
		},
	},
}

func extractPage(html string) (room.Record, error) {
	var island string
	for _, rule := range islandRules {
		if m := rule.FindStringSubmatch(html); m != nil {
			island = m[1]
			break
		}
	}

	if island == "" {
		return room.Failed(), fmt.Errorf("%w: no embedded room state", room.ErrExtractionFailed)
	}

	cleaned := unescape(island)

	store := roomStoreRegex.FindStringSubmatch(cleaned)
	if store == nil {
		return room.Failed(), fmt.Errorf("%w: room store not found", room.ErrExtractionFailed)
	}

	anchor := nicknameRegex.FindStringSubmatch(store[1])
	if anchor == nil || anchor[1] == "" {
		return room.Failed(), fmt.Errorf("%w: anchor name not found", room.ErrExtractionFailed)
	}

	storeJSON, _, _ := strings.Cut(store[1], roomStoreCut)
	storeJSON += roomStoreClose
	if !gjson.Valid(storeJSON) {
		return room.Failed(), fmt.Errorf("%w: room store is not JSON", room.ErrExtractionFailed)
	}

	obj := gjson.Get(storeJSON, "roomInfo.room")
	if !obj.IsObject() {
		return room.Failed(), fmt.Errorf("%w: room object not found", room.ErrExtractionFailed)
	}

	return buildRecord(obj, anchor[1], func(streamURL gjson.Result) (origin, bool) {
		orientation := streamURL.Get("stream_orientation").Int()
		for _, rule := range pageOriginRules {
			if main, ok := rule.find(html, orientation); ok {
				return originOf(main, main.Get("sdk_params"))
			}
		}
		return origin{}, false
	})
}

// unescape undoes the escaping upstream applies to embedded JSON.
func unescape(s string) string {
	return replaceSeq(s, `\`, "", "u0026", "&")
}

// replaceSeq applies old/new pairs one after another.
func replaceSeq(s string, oldnew ...string) string {
	for i := 0; i+1 < len(oldnew); i += 2 {
		s = strings.ReplaceAll(s, oldnew[i], oldnew[i+1])
	}
	return s
}
