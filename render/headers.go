package render

import (
	"net/http"

	"github.com/liveurl/liveurl/source"
)

// extraHeaders returns the headers of req the browser does not set on its own.
// The user agent goes through the browser's override instead.
func extraHeaders(req source.Request) map[string]string {
	extra := make(map[string]string)
	for k, v := range req.Header() {
		if len(v) == 0 || http.CanonicalHeaderKey(k) == "User-Agent" {
			continue
		}
		extra[http.CanonicalHeaderKey(k)] = v[0]
	}
	return extra
}
