package fletch

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	maxURLLength      = 2048
	maxHeaderNameLen  = 256
	maxHeaderValueLen = 8192
)

// parseBaseURL is the gate every base URL goes through. The builder needs an
// absolute URL it can layer paths and queries onto, so a bare path or an
// exotic scheme is rejected even though net/url would happily parse it.
func parseBaseURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	if len(rawURL) > maxURLLength {
		return nil, fmt.Errorf("URL exceeds maximum length of %d characters", maxURLLength)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("URL scheme must be http or https, got: %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host")
	}

	return parsed, nil
}

func validateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	if len(name) > maxHeaderNameLen {
		return fmt.Errorf("header name exceeds maximum length of %d characters", maxHeaderNameLen)
	}

	for _, r := range name {
		if !isValidHeaderNameChar(r) {
			return fmt.Errorf("header name contains invalid character: %q", r)
		}
	}

	return nil
}

func validateHeaderValue(value string) error {
	if len(value) > maxHeaderValueLen {
		return fmt.Errorf("header value exceeds maximum length of %d characters", maxHeaderValueLen)
	}

	for _, r := range value {
		if r == '\r' || r == '\n' {
			return fmt.Errorf("header value cannot contain CR or LF characters")
		}
	}

	return nil
}

func isValidHeaderNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func validateHeaders(headers map[string]string) error {
	for name, value := range headers {
		if err := validateHeaderName(name); err != nil {
			return fmt.Errorf("invalid header name %q: %w", name, err)
		}

		if err := validateHeaderValue(value); err != nil {
			return fmt.Errorf("invalid header value for %q: %w", name, err)
		}
	}

	return nil
}

func sanitizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}
