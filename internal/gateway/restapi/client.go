// Package restapi is the portal's client for the core banking REST API. All
// authoritative data and business logic live behind it; the portal itself
// holds nothing durable.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const customerHeader = "X-Customer-ID"

// Client talks to the banking backend. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	log        *zap.Logger
	customerID string

	lookups *singleflight.Group
}

// New builds a client for the given base URL, e.g. "http://localhost:8080/api".
// httpClient may be nil.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     log,
		lookups: &singleflight.Group{},
	}
}

// ForCustomer returns a client that stamps every request with the signed-in
// customer's identity header, the way the browser app's request interceptor
// did. The underlying transport and lookup group are shared.
func (c *Client) ForCustomer(customerID string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		http:       c.http,
		log:        c.log,
		customerID: customerID,
		lookups:    c.lookups,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.customerID != "" {
		req.Header.Set(customerHeader, c.customerID)
	}

	return req, nil
}

// doJSON executes the request and decodes a 2xx body into out. Non-2xx
// responses are returned as *APIError when the backend sent a decodable
// error payload.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}

	return nil
}

// APIError is a non-2xx response with a backend-supplied message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) apiError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
