// Package ratelimit caps how often a single client may submit the
// waitlist form. Limiting is abuse friction only: implementations may
// lose state on restart and must never turn an infrastructure failure
// into a rejected submission.
package ratelimit

import (
	"net/http"
	"strings"
)

// Limiter reports whether the client identified by key may proceed,
// recording the attempt as a side effect when it is allowed. A denied
// attempt is not recorded.
type Limiter interface {
	Allow(key string) bool
}

// ClientKey derives the rate-limit key for a request from proxy
// headers: first hop of X-Forwarded-For, then X-Real-Ip, then
// CF-Connecting-Ip, then Fly-Client-Ip. Clients with none of these
// share the literal "unknown" bucket, so unidentified traffic behind
// the same proxy throttles together. Accepted MVP trade-off.
func ClientKey(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	for _, name := range []string{"X-Real-Ip", "CF-Connecting-Ip", "Fly-Client-Ip"} {
		if v := strings.TrimSpace(h.Get(name)); v != "" {
			return v
		}
	}
	return "unknown"
}
