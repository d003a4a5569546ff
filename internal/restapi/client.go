// Package restapi talks to the BizPilot REST backend over HTTP and JSON.
package restapi

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
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/bizpilot/internal/resource"
	"golang.org/x/oauth2"
)

const maxBodyBytes = 10 << 20

// Config configures a Client.
type Config struct {
	BaseURL string
	// Token, when set, is sent as a bearer token on every request.
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the underlying client. Timeout and Token are
	// still applied on top of it.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client sends JSON requests to the backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the backend at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		*hc = *cfg.HTTPClient
	}
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	if cfg.Token != "" {
		rt := hc.Transport
		if rt == nil {
			rt = http.DefaultTransport
		}
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{baseURL: base, http: hc, logger: logger}, nil
}

// response is a 2xx reply.
type response struct {
	status int
	body   []byte
}

// jsonKind returns the first non-space byte of the body, or 0.
func (r response) jsonKind() byte {
	trimmed := bytes.TrimSpace(r.body)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// do sends one request. Transport failures and non-2xx statuses come back
// as *resource.NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (response, error) {
	target := c.baseURL.JoinPath(path).String()
	netErr := func(status int, message string, err error) error {
		return &resource.NetworkError{Op: op, Method: method, URL: target, StatusCode: status, Message: message, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encoding %s body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return response{}, netErr(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed", "op", op, "method", method, "url", target, "request_id", requestID, "error", err)
		return response{}, netErr(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, netErr(resp.StatusCode, "", fmt.Errorf("reading body: %w", err))
	}

	c.logger.Debug("backend request",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{status: resp.StatusCode, body: data}, netErr(resp.StatusCode, errorMessage(data), nil)
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// errorMessage pulls the message out of {"error": "..."} or
// {"message": "..."} bodies, falling back to short plain text.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		return payload.Message
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
