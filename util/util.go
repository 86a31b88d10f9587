// Package util holds terminal output helpers shared by the commands.
package util

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

// Quantify joins a count with the singular or plural noun.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Wrap wraps s to the width of stdout. Output that is not a terminal is left as is,
// so piped stream URLs are never split.
func Wrap(s string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// PrintErasable shows a progress line on stdout and returns a func clearing it.
// Nothing is printed when stdout is not a terminal.
func PrintErasable(msg string) (erase func()) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}
	return printErasable(os.Stdout, msg)
}

func printErasable(w io.Writer, msg string) func() {
	fmt.Fprintf(w, "\r%s", msg)
	return func() {
		fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(msg)))
	}
}
