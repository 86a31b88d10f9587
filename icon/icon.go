// Package icon renders the symbols liveurl prefixes its messages with.
//
// Every icon has a glyph per variant: emoji, nerd-font, plain ASCII, kaomoji
// and unicode squares. The variant is read from icons.variant on each call.
package icon

import (
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/room"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Variant is a glyph family.
type Variant string

const (
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Plain   Variant = "plain"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Emoji, Nerd, Plain, Kaomoji, Squares}

// Variants returns the names accepted by icons.variant.
func Variants() []string {
	return lo.Map(variants, func(v Variant, _ int) string {
		return string(v)
	})
}

// Icon identifies a symbol.
type Icon int

const (
	Lua Icon = iota + 1
	Fail
	Success
	Progress
	Warn
	Live
	Offline
	Link
	Cookie
)

// glyphs are in the order of variants.
type glyphs [5]string

var registry = map[Icon]glyphs{
	Lua:      {"🌙", "\ue620", "Lua", "(=^･ω･^=)", "◧"},
	Fail:     {"💀", "\uf00d", "X", "(×_×)", "▣"},
	Success:  {"🎉", "\uf00c", "✓", "(ᵔ◡ᵔ)", "■"},
	Progress: {"👾", "\uf110", "~", "┌(・。・)┘♪", "◫"},
	Warn:     {"⚠️", "\uf071", "!", "(・_・;)", "◩"},
	Live:     {"🔴", "\uf111", "LIVE", "ヽ(°〇°)ﾉ", "◼"},
	Offline:  {"💤", "\uf186", "OFF", "(－_－) zzZ", "◻"},
	Link:     {"🔗", "\uf0c1", "->", "(っ˘ω˘ς)", "▤"},
	Cookie:   {"🍪", "\uf564", "*", "(＾▽＾)っ", "▥"},
}

// In renders i in variant v. Unknown variants and icons render as "".
func In(v Variant, i Icon) string {
	idx := lo.IndexOf(variants, v)
	if idx < 0 {
		return ""
	}
	return registry[i][idx]
}

// Get renders i in the configured variant.
func Get(i Icon) string {
	return In(Variant(viper.GetString(key.IconsVariant)), i)
}

// ForStatus returns the icon standing for a room status.
func ForStatus(s room.Status) Icon {
	switch s {
	case room.StatusLive:
		return Live
	case room.StatusOffline:
		return Offline
	default:
		return Fail
	}
}
