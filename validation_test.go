package fletch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{name: "plain http", rawURL: "http://example.com"},
		{name: "https with port path and query", rawURL: "https://example.com:8443/v1?q=1"},
		{name: "empty", rawURL: "", wantErr: true},
		{name: "unsupported scheme", rawURL: "ftp://example.com", wantErr: true},
		{name: "no scheme at all", rawURL: "example.com/path", wantErr: true},
		{name: "scheme without host", rawURL: "https://", wantErr: true},
		{name: "unparsable", rawURL: "://invalid", wantErr: true},
		{name: "space in host", rawURL: "http://exa mple.com", wantErr: true},
		{
			name:    "over the length limit",
			rawURL:  "https://example.com/" + strings.Repeat("a", maxURLLength),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseBaseURL(tt.rawURL)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, parsed)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, parsed)
			assert.NotEmpty(t, parsed.Host)
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		wantErr bool
	}{
		{
			name: "typical headers",
			headers: map[string]string{
				"X-Api-Key":    "secret",
				"Content-Type": "application/json",
			},
		},
		{name: "empty map", headers: nil},
		{name: "empty name", headers: map[string]string{"": "v"}, wantErr: true},
		{name: "space in name", headers: map[string]string{"X Key": "v"}, wantErr: true},
		{name: "colon in name", headers: map[string]string{"X:Key": "v"}, wantErr: true},
		{name: "CR in value", headers: map[string]string{"X-Key": "a\rb"}, wantErr: true},
		{name: "LF in value", headers: map[string]string{"X-Key": "a\nb"}, wantErr: true},
		{
			name:    "name over the length limit",
			headers: map[string]string{strings.Repeat("a", maxHeaderNameLen+1): "v"},
			wantErr: true,
		},
		{
			name:    "value over the length limit",
			headers: map[string]string{"X-Key": strings.Repeat("v", maxHeaderValueLen+1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHeaders(tt.headers)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", sanitizeURL("  https://example.com \t\n"))
	assert.Equal(t, "", sanitizeURL("   "))
}
