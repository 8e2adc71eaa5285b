package fletch

import "fmt"

// InvalidURLError is the single failure mode of Build: no base URL was ever
// set, or the last value given to SetBaseURL/SetFullURL did not parse as an
// absolute http(s) URL.
type InvalidURLError struct {
	// Raw is the offending input. Empty when no base URL was set at all.
	Raw string
}

func (e *InvalidURLError) Error() string {
	if e.Raw == "" {
		return "no base URL set"
	}
	return fmt.Sprintf("invalid base URL %q", e.Raw)
}
