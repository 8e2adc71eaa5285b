package fletch

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// joinPath appends each segment to basePath in order. Adjacent slashes are
// collapsed so that "/v1/" + "users" and "/v1" + "/users" both come out as
// "/v1/users"; beyond that, segment contents are taken as given.
func joinPath(basePath string, segments []string) string {
	p := basePath
	for _, segment := range segments {
		p = strings.TrimRight(p, "/") + "/" + strings.TrimLeft(segment, "/")
	}
	return p
}

// replacePathParams substitutes {key} and :key placeholders in path with
// their path-escaped values. Placeholders with no registered value are left
// in place.
func replacePathParams(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	result := path
	for key, value := range params {
		escaped := url.PathEscape(value)
		result = strings.ReplaceAll(result, "{"+key+"}", escaped)
		result = strings.ReplaceAll(result, ":"+key, escaped)
	}
	return result
}

// encodeQuery renders the ordered pair sequence as a raw query string.
// url.Values.Encode sorts pairs by name, which would destroy insertion
// order, so the string is built by hand: names and values percent-encoded,
// pairs joined by "&" in the order they were added.
func encodeQuery(params []queryParam) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	for i, p := range params {
		value, err := cast.ToStringE(p.value)
		if err != nil {
			return "", err
		}
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(p.name))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(value))
	}

	return buf.String(), nil
}

// assembleURL produces the final URL from the builder's parts: a copy of
// the base, path segments joined on, path params substituted, and the
// rendered query replacing whatever query the base itself carried. A query
// that fails to render is dropped whole and the base keeps its own query;
// assembly never fails once the base URL is valid.
//
// Path work happens on the path as written, not the decoded form. Segments
// are taken as path syntax straight from the caller (so "a/b" is two
// levels) while substituted param values are escaped (so "a/b" is one
// level); writing the result back to both Path and RawPath keeps String
// from escaping it a second time.
func assembleURL(base *url.URL, segments []string, pathParams map[string]string, params []queryParam, logger Logger) *url.URL {
	u := *base

	basePath := u.RawPath
	if basePath == "" {
		basePath = u.Path
	}

	rawPath := replacePathParams(joinPath(basePath, segments), pathParams)
	if unescaped, err := url.PathUnescape(rawPath); err == nil {
		u.Path = unescaped
		if unescaped == rawPath {
			u.RawPath = ""
		} else {
			u.RawPath = rawPath
		}
	} else {
		u.Path = rawPath
		u.RawPath = ""
	}

	if len(params) > 0 {
		rendered, err := encodeQuery(params)
		if err != nil {
			logger.Debug("query rendering failed, keeping URL without constructed query",
				Field{Key: "error", Value: err.Error()})
		} else {
			u.RawQuery = rendered
		}
	}

	return &u
}
