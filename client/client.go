// Package client is the HTTP layer for the Starling public API: bearer-token
// auth, JSON encoding, per-call timeout budgets, and status-code to error
// mapping. It knows nothing about the resources it carries; the account
// package decides which endpoints to hit and what to do with the bodies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"starling/pkg/sentinel"
)

const (
	productionBaseURL = "https://api.starlingbank.com/api/v2"
	sandboxBaseURL    = "https://api-sandbox.starlingbank.com/api/v2"

	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
)

// Config carries everything needed to talk to the API.
type Config struct {
	// AccessToken is the personal access token presented as a bearer token.
	AccessToken string

	// Sandbox selects the sandbox base URL instead of production.
	Sandbox bool

	// BaseURL overrides both standard base URLs when set. Used by tests and
	// by deployments fronting the API with a proxy.
	BaseURL string

	// ReadTimeout bounds GET calls, WriteTimeout bounds PUT calls. Zero
	// values take the package defaults.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Client issues authenticated JSON requests against one base URL. It is safe
// to share across the resource objects of a single account; it holds no
// per-request state.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New builds a Client from cfg, applying defaults for unset timeouts.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		if cfg.Sandbox {
			base = sandboxBaseURL
		} else {
			base = productionBaseURL
		}
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return &Client{
		httpClient:   &http.Client{},
		baseURL:      strings.TrimRight(base, "/"),
		token:        cfg.AccessToken,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Get fetches path (plus optional query parameters) and decodes the 2xx JSON
// body into out. A nil out discards the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, c.readTimeout)
}

// Put sends body as JSON to path and decodes the 2xx response into out when
// out is non-nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, c.writeTimeout)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, timeout time.Duration) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(method, 0, time.Since(start))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	observeRequest(method, resp.StatusCode, time.Since(start))

	if err := statusError(method, path, resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for keep-alive
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError maps a non-2xx response onto the error taxonomy: sentinel
// errors for the statuses callers branch on, *APIError for everything else.
func statusError(method, path string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrNotFound)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrUnauthorized)
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrUnavailable)
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{
		Status: code,
		Method: method,
		Path:   path,
		Body:   strings.TrimSpace(string(snippet)),
	}
}
