package fletch

import (
	"encoding/base64"
	"fmt"
)

const authorizationHeader = "Authorization"

// SetBasicAuth sets the Authorization header to HTTP Basic credentials,
// replacing any previous authorization. An empty username is a no-op.
func (b *Builder) SetBasicAuth(username, password string) *Builder {
	if username == "" {
		return b
	}

	b.headers[authorizationHeader] = encodeBasicAuth(username, password)
	return b
}

// SetBearerToken sets the Authorization header to a Bearer token, replacing
// any previous authorization. An empty token is a no-op.
func (b *Builder) SetBearerToken(token string) *Builder {
	if token == "" {
		return b
	}

	b.headers[authorizationHeader] = "Bearer " + token
	return b
}

// SetAuthToken is an alias for SetBearerToken.
func (b *Builder) SetAuthToken(token string) *Builder {
	return b.SetBearerToken(token)
}

// ClearAuth removes the Authorization header.
func (b *Builder) ClearAuth() *Builder {
	delete(b.headers, authorizationHeader)
	return b
}

// encodeBasicAuth encodes username and password for HTTP Basic Authentication.
func encodeBasicAuth(username, password string) string {
	auth := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}

// DecodeBasicAuth decodes a Basic Authentication header value.
// Returns the username and password, or an error if decoding fails.
func DecodeBasicAuth(authHeader string) (username, password string, err error) {
	const prefix = "Basic "
	if len(authHeader) < len(prefix) {
		return "", "", fmt.Errorf("invalid basic auth header")
	}

	if authHeader[:len(prefix)] != prefix {
		return "", "", fmt.Errorf("not a basic auth header")
	}

	encoded := authHeader[len(prefix):]
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode basic auth: %w", err)
	}

	decodedStr := string(decoded)
	for i := 0; i < len(decodedStr); i++ {
		if decodedStr[i] == ':' {
			return decodedStr[:i], decodedStr[i+1:], nil
		}
	}

	return "", "", fmt.Errorf("invalid basic auth format")
}
