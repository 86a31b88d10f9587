package room

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Tier is an index into the fixed quality table, best first.
type Tier int

const (
	TierOrigin Tier = iota
	TierUHD
	TierHD
	TierSD
	TierLD
)

// TierCount is the number of addressable tiers. Selection lists are padded to this length.
const TierCount = 5

// tierNames is indexed by digit requests.
var tierNames = [TierCount]string{"OD", "UHD", "HD", "SD", "LD"}

var tierByName = map[string]Tier{
	"OD":     TierOrigin,
	"BD":     TierOrigin,
	"ORIGIN": TierOrigin,
	"UHD":    TierUHD,
	"HD":     TierHD,
	"SD":     TierSD,
	"LD":     TierLD,
}

func (t Tier) String() string {
	if t < 0 || int(t) >= TierCount {
		return tierNames[TierOrigin]
	}
	return tierNames[t]
}

// TierNames returns every accepted tier name, aliases included.
func TierNames() []string {
	return []string{"OD", "BD", "ORIGIN", "UHD", "HD", "SD", "LD"}
}

// ParseQuality resolves a requested quality into the label to report and the tier to select.
//
// An empty request selects tier 0. A digit request indexes the name table by its
// first digit. Names match case-insensitively; anything unrecognized keeps its label
// and selects tier 0.
func ParseQuality(quality string) (string, Tier) {
	q := strings.ToUpper(strings.TrimSpace(quality))
	if q == "" {
		return tierNames[TierOrigin], TierOrigin
	}

	if isDigits(q) {
		if d := int(q[0] - '0'); d < TierCount {
			return tierNames[d], Tier(d)
		}
		return q, TierOrigin
	}

	if t, ok := tierByName[q]; ok {
		return q, t
	}
	return q, TierOrigin
}

// SuggestQuality returns the tier name closest to an unrecognized request.
func SuggestQuality(quality string) string {
	q := strings.ToUpper(quality)
	return lo.MinBy(TierNames(), func(a, b string) bool {
		return levenshtein.Distance(q, a) < levenshtein.Distance(q, b)
	})
}

// KnownQuality reports whether quality parses without falling back.
func KnownQuality(quality string) bool {
	q := strings.ToUpper(strings.TrimSpace(quality))
	if q == "" {
		return true
	}
	if isDigits(q) {
		return int(q[0]-'0') < TierCount
	}
	_, ok := tierByName[q]
	return ok
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
