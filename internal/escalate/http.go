package escalate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultHTTPTimeout bounds one notification POST
const defaultHTTPTimeout = 10 * time.Second

const userAgent = "buildlight"

// DeliveryError is returned when a notification endpoint rejects a POST
type DeliveryError struct {
	Backend    string
	StatusCode int
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Backend, e.StatusCode)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// postJSON marshals v and POSTs it to url. Any status >= 400 is a *DeliveryError.
func postJSON(ctx context.Context, client *http.Client, url, backend string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", backend, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", backend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", backend, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return &DeliveryError{Backend: backend, StatusCode: resp.StatusCode}
	}
	return nil
}
