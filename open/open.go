// Package open hands resolved stream URLs to a media player.
package open

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/liveurl/liveurl/room"
	"github.com/samber/lo"
)

// ErrNotLive is returned for results without a record URL.
var ErrNotLive = errors.New("room is not live")

// systemHandlers open a URL with whatever the OS associates with it.
var systemHandlers = map[string][]string{
	"windows": {"rundll32.exe", "url.dll,FileProtocolHandler"},
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"android": {"termux-open"},
}

// Stream plays the record URL of result with player and waits for it to exit.
// Known players get the anchor and title as the window title. An empty player
// falls back to the system URL handler.
func Stream(ctx context.Context, result room.PlaybackResult, player string) error {
	if !result.IsLive || result.RecordURL == "" {
		return fmt.Errorf("%w: %s", ErrNotLive, result.AnchorName)
	}

	link, err := sanitize(result.RecordURL)
	if err != nil {
		return err
	}

	cmd, err := command(ctx, player, link, mediaTitle(result))
	if err != nil {
		return err
	}
	return cmd.Run()
}

func command(ctx context.Context, player, link, title string) (*exec.Cmd, error) {
	if player == "" {
		handler, ok := systemHandlers[runtime.GOOS]
		if !ok {
			return nil, fmt.Errorf("no URL handler on %s, set player.default", runtime.GOOS)
		}
		return exec.CommandContext(ctx, handler[0], append(handler[1:], link)...), nil
	}

	if _, err := exec.LookPath(player); err != nil {
		// app bundles are not on PATH
		if runtime.GOOS == "darwin" {
			return exec.CommandContext(ctx, "open", "-a", player, link), nil
		}
		return nil, fmt.Errorf("player %q: %w", player, err)
	}

	return exec.CommandContext(ctx, player, playerArgs(player, link, title)...), nil
}

// playerArgs puts the title where the player reads it and the URL last.
func playerArgs(player, link, title string) []string {
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(player), ".exe"))

	switch {
	case title == "":
		return []string{link}
	case name == "mpv":
		return []string{"--force-media-title=" + title, "--", link}
	case name == "vlc" || name == "cvlc":
		return []string{"--meta-title=" + title, link}
	case name == "ffplay":
		return []string{"-window_title", title, link}
	default:
		return []string{link}
	}
}

func mediaTitle(result room.PlaybackResult) string {
	parts := []string{result.AnchorName, result.Title}
	if result.Quality != "" {
		parts = append(parts, "["+result.Quality+"]")
	}

	return strings.Join(lo.Compact(lo.Map(parts, func(p string, _ int) string {
		return strings.TrimSpace(p)
	})), " - ")
}

// sanitize rejects stream URLs a player could read as flags or that are not http(s).
func sanitize(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}
