// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/source"
	"github.com/liveurl/liveurl/where"
	"github.com/metafates/gache"
	"github.com/tidwall/gjson"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: filesystem.Gache(),
})

// ReleasesAPI is the endpoint describing the latest release.
var ReleasesAPI = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

// Latest retrieves the most recent stable version from the GitHub Releases API.
// The result is cached for two days.
func Latest(ctx context.Context, fetcher source.Fetcher) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	body, err := fetcher.Fetch(ctx, source.Request{
		URL:     ReleasesAPI,
		Headers: map[string][]string{"Accept": {"application/vnd.github+json"}},
	})
	if err != nil {
		return "", err
	}

	version, err := tagVersion(body)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

func tagVersion(body string) (string, error) {
	tag := gjson.Get(body, "tag_name").String()
	if tag == "" {
		return "", errors.New("empty tag name")
	}
	return strings.TrimPrefix(tag, "v"), nil
}
