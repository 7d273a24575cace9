package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a failure reported by the remote commerce API. Message carries
// the server-supplied display text when the server sent one; handlers pass it
// through verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store API error (%d)", e.StatusCode)
}

// Client is the HTTP client for the remote commerce API. Responses are
// wrapped in a {data: ...} envelope; errors arrive as {error: ...} or
// {message: ...}.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client that forwards the shopper's bearer
// token verbatim. Guests use the bare client.
func (c *Client) WithToken(token string) *Client {
	copied := *c
	copied.token = token
	return &copied
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach store API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read store API response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// tolerate non-envelope bodies; status code still decides below
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}
