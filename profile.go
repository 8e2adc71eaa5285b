package fletch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is a declarative request description loaded from a YAML or JSON
// file. A profile captures the stable parts of a call (base URL, method,
// headers, query, body template, timeout) so call sites only add the
// per-request pieces through the fluent API.
type Profile struct {
	// BaseURL is required and must be an absolute http(s) URL.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Method is GET or POST. Empty means the package default.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// Path lists segments appended to the base URL in order.
	Path []string `json:"path,omitempty" yaml:"path,omitempty"`

	// Headers seed the builder's header map, case preserved.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Query lists ordered name/value pairs; duplicate names are allowed
	// and the file order is the wire order.
	Query []ProfileParam `json:"query,omitempty" yaml:"query,omitempty"`

	// Body, when present, becomes the JSON payload.
	Body any `json:"body,omitempty" yaml:"body,omitempty"`

	// Timeout accepts Go duration strings ("30s", "1m30s") or bare
	// integer seconds. Zero means the package default.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ProfileParam is one ordered query pair in a profile.
type ProfileParam struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// LoadProfile loads a request profile from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// Unknown extensions are tried as YAML. The profile is validated before it
// is returned.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	return ParseProfile(data, path)
}

// ParseProfile parses profile data. The format is determined by the file
// extension in path, or defaults to YAML if the path is empty or has an
// unknown extension.
func ParseProfile(data []byte, path string) (*Profile, error) {
	var profile Profile

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile (unknown format %s): %w", ext, err)
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Validate checks the parts of a profile that Builder would otherwise
// degrade silently, so file mistakes surface at load time instead.
func (p *Profile) Validate() error {
	if _, err := parseBaseURL(sanitizeURL(p.BaseURL)); err != nil {
		return fmt.Errorf("profile base URL: %w", err)
	}

	switch Method(p.Method) {
	case "", MethodGet, MethodPost:
	default:
		return fmt.Errorf("profile method must be GET or POST, got %q", p.Method)
	}

	if err := validateHeaders(p.Headers); err != nil {
		return fmt.Errorf("profile headers: %w", err)
	}

	return nil
}

// Builder seeds a fresh builder from the profile. The builder is
// independent of the profile: later chained calls never write back, and the
// same profile can seed any number of builders.
func (p *Profile) Builder() *Builder {
	b := NewWithConfig(Config{
		BaseURL: p.BaseURL,
		Headers: p.Headers,
		Timeout: time.Duration(p.Timeout),
	})

	if p.Method != "" {
		b.SetMethod(Method(p.Method))
	}

	b.AddPathSegments(p.Path...)

	for _, param := range p.Query {
		b.AddQueryParameter(param.Name, param.Value)
	}

	if p.Body != nil {
		b.SetJSONBody(p.Body)
	}

	return b
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML, from
// either a Go duration string ("30s", "1m30s") or a bare integer number of
// seconds.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return d.parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		var seconds int64
		if err2 := unmarshal(&seconds); err2 != nil {
			return err
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}
	return d.parse(s)
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) parse(s string) error {
	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err == nil {
		*d = Duration(dur)
		return nil
	}

	var seconds int64
	if _, err2 := fmt.Sscanf(s, "%d", &seconds); err2 == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	return err
}
