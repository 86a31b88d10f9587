package signer

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/source"
)

// Update downloads the script at remoteURL into localPath when its content differs.
// The new script must load before it replaces the old one. It reports whether the
// local script changed.
func Update(ctx context.Context, fetcher source.Fetcher, remoteURL, localPath string) (bool, error) {
	body, err := fetcher.Fetch(ctx, source.Request{URL: remoteURL})
	if err != nil {
		return false, fmt.Errorf("download script: %w", err)
	}
	if body == "" {
		return false, fmt.Errorf("download script: empty response from %s", remoteURL)
	}

	fs := filesystem.API()

	if local, err := fs.ReadFile(localPath); err == nil && sha256.Sum256(local) == sha256.Sum256([]byte(body)) {
		return false, nil
	}

	tmpPath := localPath + ".tmp"
	if err := filesystem.WriteFile(tmpPath, []byte(body), 0o644); err != nil {
		return false, err
	}

	if _, err := Load(tmpPath); err != nil {
		forget(tmpPath)
		_ = fs.Remove(tmpPath)
		return false, fmt.Errorf("downloaded script rejected: %w", err)
	}
	forget(tmpPath)

	if err := fs.Rename(tmpPath, localPath); err != nil {
		_ = fs.Remove(tmpPath)
		return false, err
	}

	forget(localPath)
	log.Infof("updated signature script %s", localPath)
	return true, nil
}
