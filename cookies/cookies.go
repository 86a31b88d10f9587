// Package cookies stores per-platform cookie headers in the system keyring.
package cookies

import (
	"errors"

	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/log"
	"github.com/zalando/go-keyring"
)

const service = constant.App

func user(platform string) string {
	return platform + "-cookie"
}

// Set stores the cookie header for platform.
func Set(platform, cookie string) error {
	return keyring.Set(service, user(platform), cookie)
}

// Get returns the stored cookie header for platform.
func Get(platform string) (string, error) {
	return keyring.Get(service, user(platform))
}

// Delete removes the stored cookie header for platform.
func Delete(platform string) error {
	return keyring.Delete(service, user(platform))
}

// Lookup returns the stored cookie header, or fallback when none is stored or the
// keyring is unavailable.
func Lookup(platform, fallback string) string {
	cookie, err := Get(platform)
	switch {
	case err == nil && cookie != "":
		return cookie
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		log.Debugf("keyring unavailable for %s: %v", platform, err)
	}
	return fallback
}
