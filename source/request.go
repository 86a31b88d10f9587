package source

import (
	"net/http"
	"strings"
)

// Request is the per-call configuration handed to a collaborator.
// Every strategy builds its own; nothing is shared between calls.
type Request struct {
	URL       string
	Proxy     string
	Cookies   string
	UserAgent string
	Headers   http.Header
}

// Header returns the headers to send, with UserAgent and Cookies applied over Headers.
func (r Request) Header() http.Header {
	h := make(http.Header, len(r.Headers)+2)
	for k, v := range r.Headers {
		h[k] = append([]string(nil), v...)
	}
	if r.UserAgent != "" {
		h.Set("User-Agent", r.UserAgent)
	}
	if c := strings.TrimSpace(r.Cookies); c != "" {
		h.Set("Cookie", c)
	}
	return h
}

// CookiePairs splits the cookie header into name/value pairs, skipping malformed ones.
func (r Request) CookiePairs() [][2]string {
	var pairs [][2]string
	for _, pair := range strings.Split(r.Cookies, ";") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	}
	return pairs
}
