// MODUL: routes_test
// ZWECK: Tests fuer die HTTP-Handler des Codec-Dienstes
// INPUT: httptest-Requests gegen den gin-Router
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, httptest, gin, testify

package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/runewire/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	var s Server
	srv := httptest.NewServer(s.GenerateRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func readSegments(t *testing.T, body *http.Response) (segs []string, last api.SegmentResponse) {
	t.Helper()

	scanner := bufio.NewScanner(body.Body)
	for scanner.Scan() {
		var resp api.SegmentResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		if resp.Done {
			last = resp
			continue
		}
		segs = append(segs, resp.Segment)
	}
	require.NoError(t, scanner.Err())
	return segs, last
}

func TestSegmentHandlerLines(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=lines", "text/plain", strings.NewReader("a\n\nb"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	segs, last := readSegments(t, resp)
	assert.Equal(t, []string{"a", "", "b"}, segs)
	assert.True(t, last.Done)
	assert.Equal(t, 3, last.Count)
}

func TestSegmentHandlerWords(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=words", "text/plain", strings.NewReader("a  b"))
	require.NoError(t, err)
	defer resp.Body.Close()

	segs, last := readSegments(t, resp)
	assert.Equal(t, []string{"a", "b"}, segs)
	assert.Equal(t, 2, last.Count)
}

func TestSegmentHandlerBadMode(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=sentences", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSegmentHandlerUnsupportedEncoding(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=lines&encoding=utf-16", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Malformed input before any output must produce a clean JSON error,
// not a half-written stream.
func TestSegmentHandlerMalformedInput(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=lines", "text/plain", bytes.NewReader([]byte{0xC3, 0x41}))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Error, "continuation")
}

func TestSegmentHandlerTruncatedInput(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/segment?mode=words", "text/plain", bytes.NewReader([]byte{'o', 'k', 0xE2}))
	require.NoError(t, err)
	defer resp.Body.Close()

	// the truncated tail fails the stream even though "ok" was decodable
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDecodeHandler(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/decode", "application/octet-stream", bytes.NewReader([]byte{0xE4, 0xB8, 0xAD}))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var text string
	var cps []uint32
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		var item api.DecodeResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &item))
		text += item.Text
		cps = append(cps, item.Codepoints...)
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, "中", text)
	assert.Equal(t, []uint32{0x4E2D}, cps)
}

func TestEncodeHandler(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(api.EncodeRequest{Codepoints: []uint32{0x41, 0xE9, 0x4E2D, 0x1F600}})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/encode", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got bytes.Buffer
	_, err = got.ReadFrom(resp.Body)
	require.NoError(t, err)

	want := []byte{0x41, 0xC3, 0xA9, 0xE4, 0xB8, 0xAD, 0xF0, 0x9F, 0x98, 0x80}
	assert.Equal(t, want, got.Bytes())
}

func TestEncodeHandlerUnsupportedEncoding(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(api.EncodeRequest{Codepoints: []uint32{0x41}, Encoding: "utf-16"})
	resp, err := http.Post(srv.URL+"/api/encode", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEncodeHandlerOverLimit(t *testing.T) {
	t.Setenv("RUNEWIRE_MAX_ENCODE_BYTES", "4")

	srv := newTestServer(t)

	body, _ := json.Marshal(api.EncodeRequest{Codepoints: []uint32{0x4E2D, 0x6587}})
	resp, err := http.Post(srv.URL+"/api/encode", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestVersionHandler(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v api.VersionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.NotEmpty(t, v.Version)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
