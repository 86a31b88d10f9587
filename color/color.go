// Package color names the terminal colors liveurl paints with, by role rather than hue.
package color

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/liveurl/liveurl/room"
)

// New initializes a lipgloss.Color from an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Message roles.
var (
	Success = New("2")
	Warning = New("#ffb703")
	Error   = New("9")
)

// Text roles.
var (
	Accent  = New("5")
	Heading = New("13")
	Label   = New("4")
	Value   = New("3")
	Link    = New("6")
	Muted   = New("#808080")
)

// Room states.
var (
	Live        = New("1")
	Offline     = Muted
	Unsupported = Error
	BadgeText   = New("230")
)

// ForStatus returns the color a room in status s is painted with.
func ForStatus(s room.Status) lipgloss.Color {
	switch s {
	case room.StatusLive:
		return Live
	case room.StatusOffline:
		return Offline
	default:
		return Unsupported
	}
}

// ForBool paints enabled settings as a success and disabled ones as an error.
func ForBool(b bool) lipgloss.Color {
	if b {
		return Success
	}
	return Error
}
