// Package fletch assembles outbound HTTP requests from incrementally
// supplied fragments. A Builder collects URL, method, headers, ordered
// query parameters, body and timeout through chained calls that never fail;
// Build validates the single thing that can be wrong (the base URL) and
// returns an immutable Request ready to hand to any transport.
package fletch

import (
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
)

var defaultConfig = Config{
	Method:  MethodGet,
	Timeout: time.Second * 30,
}

// New returns an empty builder carrying the package defaults: method GET, a
// 30 second timeout, no headers and a no-op logger.
func New() *Builder {
	return NewWithConfig(Config{})
}

// NewWithConfig returns a builder seeded from config. Zero fields are
// filled from the package defaults, so a partial Config is fine.
// Construction never fails; a BaseURL that does not validate is reported by
// Build.
func NewWithConfig(config Config) *Builder {
	if err := mergo.Merge(&config, defaultConfig); err != nil {
		config = defaultConfig
	}

	b := &Builder{
		method:   config.Method,
		headers:  cloneHeaders(config.Headers),
		timeout:  config.Timeout,
		boundary: uuid.NewString(),
		logger:   config.Logger,
	}

	if b.logger == nil {
		b.logger = NewNopLogger()
	}

	if config.BaseURL != "" {
		b.SetBaseURL(config.BaseURL)
	}

	return b
}
