package fletch

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeForm   = "application/x-www-form-urlencoded"
)

// Part is one section of a multipart/form-data payload. A Part without a
// Filename is written as a plain form field; with one it becomes a file
// part.
type Part struct {
	Name     string
	Filename string
	Content  []byte
}

// encodeJSONBody marshals v for use as a request payload. nil and the empty
// string mean "no payload" and return no data rather than encoding a JSON
// null.
func encodeJSONBody(v any) ([]byte, error) {
	if v == nil || v == "" {
		return nil, nil
	}
	return json.Marshal(v)
}

// encodeFormBody renders form as application/x-www-form-urlencoded bytes.
// Encode sorts keys; ordering only matters for the query string, not the
// body.
func encodeFormBody(form url.Values) []byte {
	if len(form) == 0 {
		return nil
	}
	return []byte(form.Encode())
}

// encodeMultipartBody writes parts in order as multipart/form-data under
// the supplied boundary. The encode is atomic: any failure aborts and
// returns nothing.
func encodeMultipartBody(boundary string, parts []Part) (body []byte, contentType string, err error) {
	buf := getBuffer()
	defer putBuffer(buf)

	w := multipart.NewWriter(buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", err
	}

	for _, part := range parts {
		var pw io.Writer
		var err error
		if part.Filename != "" {
			pw, err = w.CreateFormFile(part.Name, part.Filename)
		} else {
			pw, err = w.CreateFormField(part.Name)
		}
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(part.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	body = make([]byte, buf.Len())
	copy(body, buf.Bytes())
	return body, w.FormDataContentType(), nil
}
