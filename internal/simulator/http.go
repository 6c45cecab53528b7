package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/types"
)

// Client talks to the lane API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Code, e.Message)
}

type shotRequest struct {
	RequestID string `json:"request_id"`
	Shot      string `json:"shot"`
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]string
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &body); err != nil {
		return err
	}
	if body["status"] != "ok" {
		return fmt.Errorf("unexpected health status %q", body["status"])
	}
	return nil
}

// Shoot posts one shot.
func (c *Client) Shoot(ctx context.Context, requestID string, s model.Shot) (types.Game, error) {
	var g types.Game
	err := c.do(ctx, http.MethodPost, "/shots", shotRequest{RequestID: requestID, Shot: s.String()}, &g)
	return g, err
}

// Reset starts a new game.
func (c *Client) Reset(ctx context.Context) (types.Game, error) {
	var g types.Game
	err := c.do(ctx, http.MethodPost, "/reset", nil, &g)
	return g, err
}

// Game reads the current game.
func (c *Client) Game(ctx context.Context) (types.Game, error) {
	var g types.Game
	err := c.do(ctx, http.MethodGet, "/game", nil, &g)
	return g, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}
