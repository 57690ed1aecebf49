package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/krono-coffee/ordering-client/pkg/session"
)

// Encoding selects how a request body is serialized.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingForm
)

// Client is the sole egress point to the remote ordering service. It
// attaches the stored bearer credential when asked to, normalizes every
// failure into a typed error, and never retries.
type Client struct {
	base   string
	http   *http.Client
	tokens session.TokenStore
}

// NewClient builds a client for the service rooted at base; the /api/v1
// prefix is appended here so callers pass bare endpoint paths.
func NewClient(base string, tokens session.TokenStore) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/") + "/api/v1",
		http:   &http.Client{},
		tokens: tokens,
	}
}

// Request issues one HTTP call. For form encoding the body must be
// url.Values; for JSON it may be any marshalable value. A nil body sends
// no payload. The raw response body is returned on success so each caller
// decodes its own shape.
func (c *Client) Request(ctx context.Context, method, path string, body any, auth bool, enc Encoding) (json.RawMessage, error) {
	var token string
	if auth {
		stored, err := c.tokens.Read()
		if err != nil {
			return nil, ErrUnauthenticated
		}
		token = stored
	}

	var reader io.Reader
	var contentType string
	if body != nil {
		switch enc {
		case EncodingForm:
			values, ok := body.(url.Values)
			if !ok {
				return nil, fmt.Errorf("form body must be url.Values, got %T", body)
			}
			reader = strings.NewReader(values.Encode())
			contentType = "application/x-www-form-urlencoded"
		default:
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			reader = bytes.NewReader(encoded)
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UnreachableError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode, Message: remoteMessage(data)}
	}
	return data, nil
}

// remoteMessage extracts the service's detail field, falling back to a
// generic message when the body carries none.
func remoteMessage(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return "the ordering service reported an error"
}
