package fletch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Request is the immutable output of Build: the fully assembled URL plus
// the method, headers, body and timeout a transport needs to execute the
// call. Accessors return copies wherever the underlying value is mutable,
// so a Request can be shared across goroutines freely once built.
type Request struct {
	url     *url.URL
	method  Method
	headers map[string]string
	body    []byte
	timeout time.Duration
}

// URL returns the final absolute URL, path and query included.
func (r *Request) URL() string {
	return r.url.String()
}

// Method returns the HTTP verb.
func (r *Request) Method() Method {
	return r.method
}

// Scheme returns the scheme component of the final URL.
func (r *Request) Scheme() string {
	return r.url.Scheme
}

// Host returns the host component of the final URL.
func (r *Request) Host() string {
	return r.url.Host
}

// Path returns the path component of the final URL.
func (r *Request) Path() string {
	return r.url.Path
}

// Query returns the raw query string of the final URL, without the leading
// "?".
func (r *Request) Query() string {
	return r.url.RawQuery
}

// Headers returns a copy of the header map. Keys carry the exact case they
// were added with.
func (r *Request) Headers() map[string]string {
	return cloneHeaders(r.headers)
}

// Header returns the value of one header, or "" when it is not set. Lookup
// is exact; no case folding is applied.
func (r *Request) Header(name string) string {
	return r.headers[name]
}

// Body returns a copy of the payload, or nil when no body was set.
func (r *Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	body := make([]byte, len(r.body))
	copy(body, r.body)
	return body
}

// Timeout returns the timeout the transport should apply to this request.
func (r *Request) Timeout() time.Duration {
	return r.timeout
}

// HTTPRequest materializes the description as a *http.Request bound to ctx.
// Header names keep their exact case: entries are written straight into the
// header map rather than through Set, which would canonicalize them. The
// timeout is not applied here; deadlines belong to the caller's context or
// client. No I/O happens in this call.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var reader io.Reader
	if len(r.body) > 0 {
		reader = bytes.NewReader(r.Body())
	}

	req, err := http.NewRequestWithContext(ctx, string(r.method), r.url.String(), reader)
	if err != nil {
		return nil, err
	}

	header := make(http.Header, len(r.headers))
	for name, value := range r.headers {
		header[name] = []string{value}
	}
	req.Header = header

	return req, nil
}
