// Package apiclient talks to the storefront REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client is safe for concurrent use. A 401 on any authenticated call clears
// the held token and fires the OnUnauthorized hook.
type Client struct {
	baseURL       string
	staticBaseURL string
	httpClient    *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for baseURL, e.g. "http://localhost:8080/api". Relative
// image URLs are resolved against baseURL with the trailing "/api" removed.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL:       baseURL,
		staticBaseURL: strings.TrimSuffix(baseURL, "/api"),
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) ClearAuth() {
	c.SetToken("")
}

// OnUnauthorized registers fn to run after a 401 cleared the token. It runs on
// the calling goroutine; a later call replaces the hook.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    interface{}
	headers map[string]string

	// credential requests exchange a login for a token; their 401s mean bad
	// credentials, not an expired session.
	credential bool
	classify   func(status int, body string) string
}

func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	fullURL := c.baseURL + r.path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var reqBody io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	classify := r.classify
	if classify == nil {
		classify = classifyStatus
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    classify(resp.StatusCode, string(body)),
		Body:       string(body),
	}

	if resp.StatusCode == http.StatusUnauthorized && !r.credential {
		c.handleUnauthorized()
		apiErr.Message = MsgAuthRequired
	}

	log.Printf("API %s %s failed with status %d: %s", r.method, r.path, resp.StatusCode, strings.TrimSpace(string(body)))
	return nil, apiErr
}

func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	c.mu.Lock()
	c.token = ""
	hook := c.onUnauthorized
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (c *Client) absoluteURL(u string) string {
	if strings.HasPrefix(u, "/") {
		return c.staticBaseURL + u
	}
	return u
}
