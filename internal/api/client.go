package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/myanycart/anycart-go/internal/config"
	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/repository"
)

const refreshPath = "/api/token/refresh/"

// Client performs HTTP calls against the AnyCart backend, optionally
// authenticated with the session store's bearer token. On a 401 for an
// authenticated call it refreshes the access token once and replays the
// request exactly once; a 401 that survives that is the terminal result.
type Client struct {
	base     string
	http     *http.Client
	sessions *repository.SessionStore

	// refreshMu serializes token refreshes so concurrent 401s coalesce
	// into a single refresh call.
	refreshMu sync.Mutex
}

// RequestOptions configures a single call through Do.
type RequestOptions struct {
	// Auth attaches Authorization: Bearer <access> when a session exists.
	Auth bool
	// Body is the raw request body. Replayed as-is on the 401 retry.
	Body []byte
	// ContentType overrides the default application/json (multipart
	// bodies set their own boundary-bearing type).
	ContentType string
	// Header carries extra headers, e.g. Idempotency-Key.
	Header http.Header
}

// New creates a Client for the configured base URL. The underlying
// transport is rate limited and circuit broken.
func New(cfg config.Config, sessions *repository.SessionStore) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	transport = newBreakerTransport(transport)
	transport = newRateLimitTransport(transport, cfg.RateLimit, cfg.RateBurst)

	return &Client{
		base: strings.TrimRight(cfg.APIBase, "/"),
		http: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: transport,
		},
		sessions: sessions,
	}
}

// Do issues the request and returns the raw response body. A 204 response
// yields a nil body. Non-2xx terminal responses yield an *HTTPError.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) ([]byte, error) {
	url := c.resolve(path)

	var access string
	if opts.Auth {
		if sess := c.sessions.Get(); sess != nil {
			access = sess.Access
		}
	}

	resp, err := c.send(ctx, method, url, opts, access)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	status, statusText, body := drain(resp)

	retried := false
	if status == http.StatusUnauthorized && opts.Auth && ctx.Err() == nil {
		if newAccess := c.refreshAccess(ctx, access); newAccess != "" {
			retried = true
			resp, err = c.send(ctx, method, url, opts, newAccess)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, url, err)
			}
			status, statusText, body = drain(resp)
		}
	}

	slog.Debug("api request", "method", method, "path", path, "status", status, "retried", retried)

	if status < 200 || status > 299 {
		return nil, &HTTPError{Status: status, StatusText: statusText, URL: url, Body: string(body)}
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return body, nil
}

// DoJSON issues the request and decodes the JSON response body into out.
// A nil out discards the body; a 204 leaves out untouched.
func (c *Client) DoJSON(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	body, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if out == nil || body == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// send builds and issues a single request attempt.
func (c *Client) send(ctx context.Context, method, url string, opts RequestOptions, access string) (*http.Response, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	} else if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Auth && access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	return c.http.Do(req)
}

// refreshAccess exchanges the refresh token for a new access token and
// persists it. Returns "" on any failure: the caller then treats the
// original 401 as terminal. failedAccess is the token that just got the
// 401; if another in-flight call already replaced it, that replacement is
// returned without a network call.
func (c *Client) refreshAccess(ctx context.Context, failedAccess string) string {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	sess := c.sessions.Get()
	if sess == nil || sess.Refresh == "" {
		return ""
	}
	if sess.Access != "" && sess.Access != failedAccess {
		return sess.Access
	}

	payload, err := json.Marshal(model.RefreshRequest{Refresh: sess.Refresh})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("token refresh failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("token refresh rejected", "status", resp.StatusCode)
		return ""
	}

	var out model.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Access == "" {
		return ""
	}

	c.sessions.SetAccess(out.Access)
	return out.Access
}

// resolve joins a relative path onto the base URL; absolute URLs pass
// through untouched.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.base + path
}

// drain reads and closes the response body. Read failures are swallowed:
// whatever was read is returned.
func drain(resp *http.Response) (status int, statusText string, body []byte) {
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	return resp.StatusCode, http.StatusText(resp.StatusCode), body
}
