package room

import "errors"

// Failure kinds of a resolution. Strategies wrap them with fmt.Errorf("%w: ...").
var (
	// ErrUnsupportedURLKind means the URL shape does not fit a strategy. The chain skips
	// the strategy and may remap the URL through the identity resolver.
	ErrUnsupportedURLKind = errors.New("unsupported url kind")

	// ErrRiskControl means upstream answered with an empty or blocked response.
	ErrRiskControl = errors.New("risk control triggered")

	// ErrUnsupportedLiveFormat means the session uses a playback technology that cannot
	// be extracted (e.g. VR). It ends the resolution.
	ErrUnsupportedLiveFormat = errors.New("unsupported live format")

	// ErrExtractionFailed means the payload shape was not recognized by any rule.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrStrategiesExhausted means every strategy failed.
	ErrStrategiesExhausted = errors.New("all strategies exhausted")
)

var kinds = []error{
	ErrUnsupportedURLKind,
	ErrRiskControl,
	ErrUnsupportedLiveFormat,
	ErrExtractionFailed,
	ErrStrategiesExhausted,
}

// Kind returns the failure kind err wraps, or nil for errors outside the taxonomy
// such as transport failures and timeouts.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
