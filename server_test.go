package fletch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newHTTPTestServer() *httptest.Server {
	return httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/echo":
				body, _ := io.ReadAll(r.Body)
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"method":      r.Method,
					"path":        r.URL.Path,
					"query":       r.URL.RawQuery,
					"contentType": r.Header.Get("Content-Type"),
					"body":        string(body),
				})

			case "/multipart":
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}

				file, header, err := r.FormFile("upload")
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				defer file.Close()

				content, _ := io.ReadAll(file)
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"field":    r.FormValue("field"),
					"filename": header.Filename,
					"file":     string(content),
				})

			case "/slow":
				time.Sleep(200 * time.Millisecond)
				w.WriteHeader(http.StatusOK)

			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}),
	)
}

func doRequest(t *testing.T, req *Request) []byte {
	t.Helper()

	httpReq, err := req.HTTPRequest(context.Background())
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return payload
}

func TestRoundTripGetWithOrderedQuery(t *testing.T) {
	srv := newHTTPTestServer()
	defer srv.Close()

	req, err := New().
		SetBaseURL(srv.URL).
		AddPath("echo").
		AddQueryParameter("b", 2).
		AddQueryParameter("a", "1").
		AddQueryParameter("b", 3).
		Build()
	require.NoError(t, err)

	payload := doRequest(t, req)

	assert.Equal(t, http.MethodGet, gjson.GetBytes(payload, "method").String())
	assert.Equal(t, "/echo", gjson.GetBytes(payload, "path").String())
	assert.Equal(t, "b=2&a=1&b=3", gjson.GetBytes(payload, "query").String(),
		"the wire query must keep insertion order")
}

func TestRoundTripPostJSON(t *testing.T) {
	srv := newHTTPTestServer()
	defer srv.Close()

	req, err := New().
		SetBaseURL(srv.URL).
		AddPath("echo").
		SetMethod(MethodPost).
		SetJSONBody(map[string]string{"name": "x"}).
		Build()
	require.NoError(t, err)

	payload := doRequest(t, req)

	assert.Equal(t, http.MethodPost, gjson.GetBytes(payload, "method").String())
	assert.Equal(t, "application/json", gjson.GetBytes(payload, "contentType").String())
	assert.JSONEq(t, `{"name":"x"}`, gjson.GetBytes(payload, "body").String())
}

func TestRoundTripMultipart(t *testing.T) {
	srv := newHTTPTestServer()
	defer srv.Close()

	req, err := New().
		SetBaseURL(srv.URL).
		AddPath("multipart").
		SetMethod(MethodPost).
		SetMultipartBody(
			Part{Name: "field", Content: []byte("value")},
			Part{Name: "upload", Filename: "a.txt", Content: []byte("file data")},
		).
		Build()
	require.NoError(t, err)

	payload := doRequest(t, req)

	assert.Equal(t, "value", gjson.GetBytes(payload, "field").String())
	assert.Equal(t, "a.txt", gjson.GetBytes(payload, "filename").String())
	assert.Equal(t, "file data", gjson.GetBytes(payload, "file").String())
}

func TestClientHonorsRequestTimeout(t *testing.T) {
	srv := newHTTPTestServer()
	defer srv.Close()

	req, err := New().
		SetBaseURL(srv.URL).
		AddPath("slow").
		SetTimeout(50 * time.Millisecond).
		Build()
	require.NoError(t, err)

	httpReq, err := req.HTTPRequest(context.Background())
	require.NoError(t, err)

	client := &http.Client{Timeout: req.Timeout()}
	res, err := client.Do(httpReq)
	if res != nil {
		res.Body.Close()
	}
	assert.Error(t, err)
}
