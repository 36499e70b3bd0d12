package jenkins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single status request
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a status response is read
const maxBodySize = 4 << 20

// Fetcher retrieves the last completed build for a status URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Build, error)
}

// Client fetches job status over HTTP
type Client struct {
	client *http.Client
}

// NewClient creates a Client whose requests time out after timeout.
// A non-positive timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP creates a Client around a custom HTTP client
func NewClientWithHTTP(client *http.Client) *Client {
	return &Client{client: client}
}

// Fetch issues one GET for url and decodes the build payload.
// Any failure, including a non-2xx status or an undecodable body,
// is returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (*Build, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	var build Build
	if err := json.Unmarshal(body, &build); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return &build, nil
}
