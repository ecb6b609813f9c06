// Package gateway is the HTTP client for the user API
// (GET/PUT /api/users/{userId}).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/profile/internal/model"
)

const RequestIDHeader = "X-Request-Id"

// APIError is an {"error": "..."} response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithLogger(l *slog.Logger) Option      { return func(c *Client) { c.logger = l } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Read fetches the user record.
func (c *Client) Read(ctx context.Context, userID, token string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, userID, token, nil, &u)
	return u, err
}

// Update applies patch and returns the stored record.
func (c *Client) Update(ctx context.Context, userID, token string, patch model.Patch) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPut, userID, token, patch, &u)
	return u, err
}

func (c *Client) do(ctx context.Context, method, userID, token string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	endpoint := c.baseURL + "/api/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rd)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("method", method, "user_id", userID, "request_id", reqID)
	log.Debug("user api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("user api transport error", "err", err)
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	// The API reports failures as {"error": "..."}, sometimes with a 200.
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)
	if envelope.Error != "" {
		log.Info("user api error", "status", resp.StatusCode, "error", envelope.Error)
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Info("user api error", "status", resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	log.Debug("user api ok", "status", resp.StatusCode)
	return nil
}
