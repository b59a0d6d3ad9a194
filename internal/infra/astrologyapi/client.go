package astrologyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://json.astrologyapi.com/v1"
	defaultTimeout = 30 * time.Second
)

// Config holds credentials for the computation API.
type Config struct {
	BaseURL string
	UserID  string
	APIKey  string
	Timeout time.Duration
}

// UpstreamError reports a failed call to the computation API.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("%s: status=%d body=%s", e.Endpoint, e.Status, e.Body)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client posts birth data to json.astrologyapi.com.
type Client struct {
	baseURL    string
	userID     string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client. Empty credentials are allowed; the API rejects
// them with 401 which surfaces as an UpstreamError.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  cfg.UserID,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Call posts payload to the named endpoint and returns the decoded JSON body
// untouched. Nothing is retried.
func (c *Client) Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("encode payload: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("build request: %w", err)}
	}
	req.SetBasicAuth(c.userID, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(excerpt)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(raw) {
		return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Err: errors.New("response is not valid json")}
	}
	return json.RawMessage(raw), nil
}
