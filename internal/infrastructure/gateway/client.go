// Package gateway is the single outbound path to the support backend.
//
// Every call yields a Result envelope: Success with the raw response body, or
// a failure Message. Transport errors, non-2xx answers and undecodable request
// bodies are all folded into the envelope; nothing here returns a Go error for
// an HTTP call.
package gateway

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

	"golang.org/x/oauth2"

	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

const defaultFailureMessage = "Request failed"

// TokenSource supplies the current bearer token; "" means unauthenticated.
type TokenSource interface {
	Token() string
}

// Result is the uniform envelope every gateway call returns.
type Result struct {
	Success bool
	// Data is the raw 2xx response body.
	Data json.RawMessage
	// Message explains a failure; the backend's own message when it sent one.
	Message string
	// StatusCode is 0 when no response arrived.
	StatusCode int
}

// TransportFailed reports a failure where the backend never answered.
func (r Result) TransportFailed() bool {
	return !r.Success && r.StatusCode == 0
}

// HasData reports whether a successful body carries a value other than null.
func (r Result) HasData() bool {
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// AsError converts a failed result into an AppError: transport_error when no
// response arrived, remote_error otherwise. fallback is used when the result
// has no message. A successful result yields nil.
func (r Result) AsError(fallback string) error {
	if r.Success {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = fallback
	}
	if r.TransportFailed() {
		return errors.NewTransportError(msg)
	}
	return errors.NewRemoteError(r.StatusCode, msg)
}

// Decode unmarshals a successful result's body into T.
func Decode[T any](r Result) (T, error) {
	var out T
	if !r.Success {
		return out, fmt.Errorf("decode failed result: %s", r.Message)
	}
	if !r.HasData() {
		return out, nil
	}
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return out, fmt.Errorf("unmarshal response: %w", err)
	}
	return out, nil
}

// Request describes one backend call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client is the support backend API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	paths      Paths
	httpClient *http.Client
	timeout    time.Duration
	log        logger.Interface
}

// Paths are the backend path segments of the two integrations.
type Paths struct {
	Helpdesk string
	CRM      string
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the HTTP
// client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

func WithLogger(l logger.Interface) Option {
	return func(client *Client) {
		client.log = l
	}
}

// WithPaths overrides the integration path segments.
func WithPaths(p Paths) Option {
	return func(client *Client) {
		if p.Helpdesk != "" {
			client.paths.Helpdesk = p.Helpdesk
		}
		if p.CRM != "" {
			client.paths.CRM = p.CRM
		}
	}
}

// NewClient creates a client for baseURL (e.g. "http://localhost:5000/api").
// tokens may be nil, in which case every request is unauthenticated.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		paths:   Paths{Helpdesk: "freshdesk", CRM: "hubspot"},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Do performs req and normalizes the outcome.
func (c *Client) Do(ctx context.Context, req Request) Result {
	start := time.Now()
	res := c.do(ctx, req)
	c.log.Debugw("backend call",
		"method", req.Method,
		"path", req.Path,
		"status", res.StatusCode,
		"success", res.Success,
		"duration", time.Since(start),
	)
	return res
}

func (c *Client) do(ctx context.Context, req Request) Result {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return Result{Message: fmt.Sprintf("marshal request: %v", err)}
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return Result{Message: transportMessage(err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(httpReq)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{Message: transportMessage(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Message: transportMessage(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(resp.StatusCode, respBody),
		}
	}

	return Result{Success: true, Data: respBody, StatusCode: resp.StatusCode}
}

// errorBody is the shape the backend uses for rejections; either field may be set.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func remoteMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}

func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultFailureMessage
	}
	return err.Error()
}
