package fletch

import "time"

// Config seeds a builder with shared settings. Zero fields fall back to the
// package defaults: method GET, a 30 second timeout, no headers and a no-op
// logger.
type Config struct {
	// BaseURL, when set, goes through the same eager validation as
	// SetBaseURL. An invalid value leaves the builder without a usable
	// base, which surfaces at Build.
	BaseURL string

	// Method is the HTTP verb for built requests.
	Method Method

	// Headers seed the builder's header map. The map is copied; the
	// caller keeps ownership of its own copy.
	Headers map[string]string

	// Timeout is carried on built requests for the transport to apply.
	Timeout time.Duration

	// Logger receives debug notes when a fragment is silently dropped.
	Logger Logger
}

// cloneHeaders copies a header map, preserving key case exactly. The result
// is always non-nil so callers can write into it directly.
func cloneHeaders(headers map[string]string) map[string]string {
	result := make(map[string]string, len(headers))
	for k, v := range headers {
		result[k] = v
	}
	return result
}
