// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these keys govern terminal output.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)

// Network Transport - these keys configure the HTTP fetch collaborator.
const (
	NetworkTimeout     = "network.timeout"
	NetworkFingerprint = "network.fingerprint"
	NetworkProxy       = "network.proxy"
)

// Browser Rendering - these keys configure the last-resort rendered-page strategy.
const (
	RenderBackend     = "render.backend"
	RenderHeadless    = "render.headless"
	RenderBrowserPath = "render.browser_path"
)

// Stream Selection - these keys tune the quality selector.
const (
	QualityDefault = "quality.default"
	ProbeEnabled   = "probe.enabled"
)

// Platform Credentials and Identity.
const (
	DouyinCookie  = "douyin.cookie"
	IdentityCache = "identity.cache"
)

// Signature Scripts.
const (
	SignerScript    = "signer.script"
	SignerUpdateURL = "signer.update_url"
)

// Playback.
const (
	Player = "player.default"
)
