package fletch

import (
	"net/http"
	"net/url"
	"time"
)

// Method is the HTTP verb carried by a built request.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

// Builder accumulates the description of an HTTP request through chained
// calls and materializes it with Build. Configuration never fails: a
// fragment that cannot be applied is dropped with a debug log and the
// builder keeps its previous state. Build is the single point of failure,
// and the only thing it rejects is a missing or invalid base URL.
//
// Builders are created with New or NewWithConfig; the zero value has no
// logger or header storage and is not usable. A Builder is not safe for
// concurrent use; share the Request it builds instead.
type Builder struct {
	rawBaseURL string
	baseURL    *url.URL
	segments   []string
	pathParams map[string]string
	method     Method
	headers    map[string]string
	query      []queryParam
	body       []byte
	timeout    time.Duration
	boundary   string
	logger     Logger
}

// SetBaseURL parses rawURL into the base URL slot, overwriting any previous
// value. Only absolute http and https URLs are accepted; anything else
// leaves the slot invalid and the failure surfaces at Build, never here.
func (b *Builder) SetBaseURL(rawURL string) *Builder {
	rawURL = sanitizeURL(rawURL)
	b.rawBaseURL = rawURL

	parsed, err := parseBaseURL(rawURL)
	if err != nil {
		b.baseURL = nil
		b.logger.Debug("base URL rejected",
			Field{Key: "url", Value: rawURL},
			Field{Key: "error", Value: err.Error()})
		return b
	}

	b.baseURL = parsed
	return b
}

// SetFullURL accepts a complete, already-assembled URL. Storage and
// validation are identical to SetBaseURL; the separate name is for call
// sites that pass a finished URL rather than a root to build on.
func (b *Builder) SetFullURL(rawURL string) *Builder {
	return b.SetBaseURL(rawURL)
}

// AddPath appends one path segment. Segments are joined to the base path in
// call order when the request is built.
func (b *Builder) AddPath(segment string) *Builder {
	b.segments = append(b.segments, segment)
	return b
}

// AddPathSegments appends segments in the order given.
func (b *Builder) AddPathSegments(segments ...string) *Builder {
	b.segments = append(b.segments, segments...)
	return b
}

// SetPathParam registers a substitution for {key} and :key placeholders in
// the assembled path. The value is path-escaped on substitution.
func (b *Builder) SetPathParam(key, value string) *Builder {
	if b.pathParams == nil {
		b.pathParams = make(map[string]string)
	}
	b.pathParams[key] = value
	return b
}

// SetPathParams registers every entry of params as SetPathParam does.
func (b *Builder) SetPathParams(params map[string]string) *Builder {
	for key, value := range params {
		b.SetPathParam(key, value)
	}
	return b
}

// SetMethod sets the HTTP verb, overwriting the previous one.
func (b *Builder) SetMethod(method Method) *Builder {
	b.method = method
	return b
}

// AddHeader inserts or overwrites a single header. Names are stored exactly
// as given; the builder never canonicalizes them, so "Content-Type" and
// "content-type" are distinct entries.
func (b *Builder) AddHeader(name, value string) *Builder {
	b.headers[name] = value
	return b
}

// SetHeaders replaces the whole header map with a copy of headers. Passing
// nil clears all headers.
func (b *Builder) SetHeaders(headers map[string]string) *Builder {
	b.headers = cloneHeaders(headers)
	return b
}

// SetTimeout overwrites the timeout carried on built requests. The builder
// records the value for the transport; it enforces nothing itself.
func (b *Builder) SetTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// AddQueryParameter appends one (name, value) pair to the query sequence.
// Pairs render in insertion order and duplicate names are kept. A nil
// value, including a typed nil pointer, means "not provided" and the call
// is a no-op. The value is stringified at Build time; a value that cannot
// be stringified causes the whole constructed query to be dropped from the
// final URL.
func (b *Builder) AddQueryParameter(name string, value any) *Builder {
	if isAbsentValue(value) {
		return b
	}
	b.query = append(b.query, queryParam{name: name, value: value})
	return b
}

// AddQueryParameters applies AddQueryParameter to every entry of params.
// Map iteration order is not deterministic; call AddQueryParameter directly
// when the wire order matters.
func (b *Builder) AddQueryParameters(params map[string]any) *Builder {
	for name, value := range params {
		b.AddQueryParameter(name, value)
	}
	return b
}

// AddQueryStruct appends the fields of a tagged struct as query pairs, in
// field declaration order. The `query` tag names the parameter, "-" skips
// the field and the omitempty option drops zero values; slice fields expand
// to one pair per element. A value that is not a struct or pointer to
// struct is ignored.
func (b *Builder) AddQueryStruct(v any) *Builder {
	params, err := structToQueryParams(v)
	if err != nil {
		b.logger.Debug("query struct ignored", Field{Key: "error", Value: err.Error()})
		return b
	}
	b.query = append(b.query, params...)
	return b
}

// SetBody installs body as the raw payload, replacing any previous one. No
// header is touched; pair with AddHeader when the receiver needs a content
// type.
func (b *Builder) SetBody(body []byte) *Builder {
	b.body = body
	return b
}

// SetJSONBody marshals v and installs the result as the payload, replacing
// any previous body and forcing Content-Type to application/json. A value
// that fails to marshal leaves body and headers exactly as they were.
func (b *Builder) SetJSONBody(v any) *Builder {
	data, err := encodeJSONBody(v)
	if err != nil {
		b.logger.Debug("json body encoding failed, body unchanged",
			Field{Key: "error", Value: err.Error()})
		return b
	}
	if data == nil {
		return b
	}

	b.body = data
	b.headers[contentTypeHeader] = contentTypeJSON
	return b
}

// SetFormBody URL-encodes form and installs it as the payload, replacing
// any previous body and forcing Content-Type to
// application/x-www-form-urlencoded. An empty form is a no-op.
func (b *Builder) SetFormBody(form url.Values) *Builder {
	data := encodeFormBody(form)
	if data == nil {
		return b
	}

	b.body = data
	b.headers[contentTypeHeader] = contentTypeForm
	return b
}

// SetMultipartBody encodes parts as multipart/form-data under the builder's
// boundary token and installs the result, replacing any previous body and
// setting Content-Type to the full multipart value. The encode is atomic:
// on any failure the previous body and headers stay untouched.
func (b *Builder) SetMultipartBody(parts ...Part) *Builder {
	body, contentType, err := encodeMultipartBody(b.boundary, parts)
	if err != nil {
		b.logger.Debug("multipart body encoding failed, body unchanged",
			Field{Key: "error", Value: err.Error()})
		return b
	}

	b.body = body
	b.headers[contentTypeHeader] = contentType
	return b
}

// Boundary returns the builder's multipart boundary token. The token is
// generated once at construction and reused by every SetMultipartBody call
// on this instance.
func (b *Builder) Boundary() string {
	return b.boundary
}

// Build validates the accumulated state and materializes it as an immutable
// Request. The only failure mode is a missing or invalid base URL, reported
// as *InvalidURLError. Build does not consume the builder: further
// configuration followed by another Build yields a fresh snapshot, and
// building twice with no changes in between yields equal requests.
func (b *Builder) Build() (*Request, error) {
	if b.baseURL == nil {
		return nil, &InvalidURLError{Raw: b.rawBaseURL}
	}

	u := assembleURL(b.baseURL, b.segments, b.pathParams, b.query, b.logger)

	var body []byte
	if b.body != nil {
		body = make([]byte, len(b.body))
		copy(body, b.body)
	}

	return &Request{
		url:     u,
		method:  b.method,
		headers: cloneHeaders(b.headers),
		body:    body,
		timeout: b.timeout,
	}, nil
}
