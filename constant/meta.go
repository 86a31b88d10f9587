// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "liveurl"

	// Repository is the GitHub owner/name the releases are published under.
	Repository = "liveurl/liveurl"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default desktop User-Agent string used for requests without a platform-specific override.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  string
	BuiltBy  string
	Revision string
)

// Logo is printed above the root command's long description.
const Logo = `  _ _                          _
 | (_)_   _____ _   _ _ __| |
 | | \ \ / / _ \ | | | '__| |
 | | |\ V /  __/ |_| | |  | |
 |_|_| \_/ \___|\__,_|_|  |_|`
