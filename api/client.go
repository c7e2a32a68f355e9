// Package api - Client fuer den Runewire-Dienst.
// Dieses Modul enthaelt die Client-Struktur, Basis-Methoden und die
// Stream-Verarbeitung von NDJSON-Antworten.
//
// Package api implements the client-side API for code wishing to
// interact with the runewire service. The runewire command-line client
// itself uses this package to talk to a remote server.
package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/version"
)

const maxBufferSize = 8 << 20 // 8 MiB per NDJSON line

// Client encapsulates client state for interacting with the runewire
// service. Use [ClientFromEnvironment] to create new Clients.
type Client struct {
	base *url.URL
	http *http.Client
}

// ClientFromEnvironment creates a new [Client] using configuration from
// the environment variable RUNEWIRE_HOST, which points to the network
// host and port on which the runewire service is listening. The format
// of this variable is:
//
//	<scheme>://<host>:<port>
//
// If the variable is not specified, a default host and port is used.
func ClientFromEnvironment() (*Client, error) {
	return &Client{
		base: envconfig.Host(),
		http: http.DefaultClient,
	}, nil
}

func NewClient(base *url.URL, http *http.Client) *Client {
	return &Client{
		base: base,
		http: http,
	}
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	if err := json.Unmarshal(body, &apiError); err != nil {
		// Use the full body as the message if we fail to decode a response.
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

// requestURL joins path onto the base URL; a query string in path is
// carried over instead of being escaped into the path.
func (c *Client) requestURL(path string) *url.URL {
	p, q, _ := strings.Cut(path, "?")
	u := c.base.JoinPath(p)
	u.RawQuery = q
	return u
}

func userAgent() string {
	return fmt.Sprintf("runewire/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version())
}

func (c *Client) do(ctx context.Context, method, path, contentType string, reqData any, respData any) error {
	var reqBody io.Reader
	switch reqData := reqData.(type) {
	case io.Reader:
		reqBody = reqData
	case nil:
		// noop
	default:
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	requestURL := c.requestURL(path)
	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent())

	response, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if err := checkError(response, respBody); err != nil {
		return err
	}

	if respData != nil && len(respBody) > 0 {
		if b, ok := respData.(*[]byte); ok {
			*b = respBody
			return nil
		}
		return json.Unmarshal(respBody, respData)
	}

	return nil
}

func (c *Client) stream(ctx context.Context, method, path, contentType string, data any, fn func([]byte) error) error {
	var reqBody io.Reader
	switch data := data.(type) {
	case io.Reader:
		reqBody = data
	case nil:
		// noop
	default:
		bts, err := json.Marshal(data)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(bts)
	}

	requestURL := c.requestURL(path)
	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Accept", "application/x-ndjson")
	request.Header.Set("User-Agent", userAgent())

	response, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	scanner := bufio.NewScanner(response.Body)
	// increase the buffer size to avoid running out of space
	scanBuf := make([]byte, 0, maxBufferSize)
	scanner.Buffer(scanBuf, maxBufferSize)
	for scanner.Scan() {
		var errorResponse struct {
			Error string `json:"error,omitempty"`
		}

		bts := scanner.Bytes()
		if err := json.Unmarshal(bts, &errorResponse); err != nil {
			if response.StatusCode >= http.StatusBadRequest {
				return StatusError{
					StatusCode:   response.StatusCode,
					Status:       response.Status,
					ErrorMessage: string(bts),
				}
			}
			return fmt.Errorf("unmarshal: %w", err)
		}

		if errorResponse.Error != "" {
			return StatusError{
				StatusCode:   response.StatusCode,
				Status:       response.Status,
				ErrorMessage: errorResponse.Error,
			}
		}

		if err := fn(bts); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// SegmentFunc is called once per streamed segment.
type SegmentFunc func(SegmentResponse) error

// Segment streams the request body to the server and invokes fn for
// every completed segment. mode is "lines", "words" or "raw".
func (c *Client) Segment(ctx context.Context, body io.Reader, mode string, fn SegmentFunc) error {
	return c.stream(ctx, http.MethodPost, "/api/segment?mode="+url.QueryEscape(mode), "text/plain", body, func(bts []byte) error {
		var resp SegmentResponse
		if err := json.Unmarshal(bts, &resp); err != nil {
			return err
		}
		return fn(resp)
	})
}

// DecodeFunc is called once per streamed decoded chunk.
type DecodeFunc func(DecodeResponse) error

// Decode streams the request body to the server and invokes fn for
// every decoded text chunk.
func (c *Client) Decode(ctx context.Context, body io.Reader, fn DecodeFunc) error {
	return c.stream(ctx, http.MethodPost, "/api/decode", "application/octet-stream", body, func(bts []byte) error {
		var resp DecodeResponse
		if err := json.Unmarshal(bts, &resp); err != nil {
			return err
		}
		return fn(resp)
	})
}

// Encode sends code points to the server and returns the encoded bytes.
func (c *Client) Encode(ctx context.Context, req EncodeRequest) ([]byte, error) {
	var body []byte
	if err := c.do(ctx, http.MethodPost, "/api/encode", "application/json", req, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// Version returns the server version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp VersionResponse
	if err := c.do(ctx, http.MethodGet, "/api/version", "application/json", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}
