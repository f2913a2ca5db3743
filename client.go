// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Default client configuration values
const (
	DefaultRootURL         = "https://graph.facebook.com"
	DefaultUserAgent       = "go-fbgraph"
	DefaultPrettyPrintLogs = false
	DefaultRedact          = true
)

// Security limits for logging
const (
	MaxBodySizeForLogging = 1 * 1024 * 1024 // 1MB
)

// Logging message constants
const (
	BodyTooLargeMessage = "[BODY TOO LARGE FOR LOGGING]"
)

// redaction pairs a pattern with its replacement
type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

// defaultRedactions strip credentials from URLs, form bodies and JSON
var defaultRedactions = []redaction{
	{regexp.MustCompile(`(access_token|client_secret|appsecret_proof)=([^&\s"]*)`), "$1=[REDACTED]"},
	{regexp.MustCompile(`"(access_token|client_secret|password|secret|token)"\s*:\s*"[^"]*"`), `"$1":"[REDACTED]"`},
}

// Client carries the transport configuration shared by all nodes
//
// A Client holds no per-request state and is safe for concurrent use.
type Client struct {
	// RootURL is the Graph API root every node endpoint is joined to
	RootURL string

	// Timeout is the transport timeout of the HTTP client (0 means none)
	Timeout time.Duration

	httpClient *http.Client
	userAgent  string

	// Logging configuration
	logger          Logger
	prettyPrintLogs bool
	redact          bool
	redactions      []redaction
}

// NewClient creates a Graph API client with the specified options
//
// No request is made until a node operation is called.
//
// Example:
//
//	client, err := fbgraph.NewClient(
//	    fbgraph.RootURL("https://graph.facebook.com/v19.0"),
//	    fbgraph.Timeout(10*time.Second),
//	    fbgraph.WithLogger(fbgraph.NewDefaultLogger(fbgraph.LogLevelInfo)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	me, err := client.Fetch(ctx, "me", fbgraph.AccessToken(token))
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(opts ...func(*Client)) (*Client, error) {
	client := &Client{
		RootURL:         DefaultRootURL,
		userAgent:       DefaultUserAgent,
		logger:          &NoOpLogger{},
		prettyPrintLogs: DefaultPrettyPrintLogs,
		redact:          DefaultRedact,
		redactions:      defaultRedactions,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.RootURL = strings.TrimRight(client.RootURL, "/")

	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.Timeout > 0 {
		// the caller's client may be shared, set the timeout on a copy
		hc := *client.httpClient
		hc.Timeout = client.Timeout
		client.httpClient = &hc
	}

	client.logger.Debug(context.Background(), "Graph API client created",
		"root_url", client.RootURL)

	return client, nil
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// DefaultClient returns a shared client with default configuration
func DefaultClient() *Client {
	defaultClientOnce.Do(func() {
		c, err := NewClient()
		if err != nil {
			panic(fmt.Sprintf("fbgraph: default client: %v", err))
		}
		defaultClient = c
	})
	return defaultClient
}

// validateConfig validates client configuration
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.RootURL) == "" {
		return fmt.Errorf("root URL cannot be empty")
	}
	u, err := url.Parse(c.RootURL)
	if err != nil {
		return fmt.Errorf("invalid root URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("root URL must use http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("root URL must include a host")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got: %v", c.Timeout)
	}

	if u.Scheme == "http" {
		c.logger.Warn(context.Background(), "Root URL is not encrypted",
			"root_url", c.RootURL,
			"security_risk", "Access tokens transmitted in clear text")
	}
	return nil
}

// rawResponse is the outcome of a single HTTP exchange
type rawResponse struct {
	StatusCode int
	Status     string
	Body       string
}

// send performs one HTTP request and reads the full response body
//
// Non-2xx statuses are returned as a rawResponse, not as an error; only
// transport failures yield an error.
func (c *Client) send(ctx context.Context, method, target string, body io.Reader, contentType string) (rawResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to execute request: %s", c.redactSensitiveData(err.Error()))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return rawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(data),
	}, nil
}

// execute sends params to target with the given method and interprets the result
func (c *Client) execute(ctx context.Context, method, target string, params *Params, timeout time.Duration) (Res, error) {
	operation := strings.ToLower(method)

	if err := checkContextCancellation(ctx); err != nil {
		return Res{}, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch method {
	case MethodPost:
		if params.hasRaw() {
			buf := &bytes.Buffer{}
			w := multipart.NewWriter(buf)
			if err := params.writeMultipart(w); err != nil {
				return Res{}, fmt.Errorf("%s: %w", operation, err)
			}
			if err := w.Close(); err != nil {
				return Res{}, fmt.Errorf("%s: %w", operation, err)
			}
			body = buf
			contentType = w.FormDataContentType()
		} else {
			form, err := params.encode()
			if err != nil {
				return Res{}, fmt.Errorf("%s: %w", operation, err)
			}
			body = strings.NewReader(form.Encode())
			contentType = "application/x-www-form-urlencoded"
		}
	default:
		if params.Len() > 0 {
			query, err := params.encode()
			if err != nil {
				return Res{}, fmt.Errorf("%s: %w", operation, err)
			}
			target += "?" + query.Encode()
		}
	}

	c.logger.Debug(ctx, "Graph API request",
		"method", method,
		"url", c.redactSensitiveData(target))

	raw, err := c.send(ctx, method, target, body, contentType)
	if err != nil {
		c.logger.Error(ctx, "Graph API request failed",
			"method", method,
			"url", c.redactSensitiveData(target),
			"error", err.Error())
		return Res{}, fmt.Errorf("%s: %w", operation, err)
	}

	c.logger.Debug(ctx, "Graph API response",
		"method", method,
		"status", raw.StatusCode,
		"body", c.prepareBodyForLogging(raw.Body))

	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		gerr := classifyErrorBody(operation, raw.StatusCode, raw.Status, raw.Body)
		gerr.redact = c.redactSensitiveData
		c.logger.Error(ctx, "Graph API error",
			"method", method,
			"status", raw.StatusCode,
			"kind", gerr.Kind.String(),
			"type", gerr.Type,
			"message", gerr.Message)
		return Res{}, gerr
	}

	res, err := decodeBody(operation, raw.Body)
	if gerr, ok := err.(*GraphError); ok {
		gerr.StatusCode = raw.StatusCode
		gerr.redact = c.redactSensitiveData
	}
	return res, err
}

// prepareBodyForLogging redacts credentials and optionally pretty-prints JSON
func (c *Client) prepareBodyForLogging(body string) string {
	if len(body) > MaxBodySizeForLogging {
		return BodyTooLargeMessage
	}

	redacted := c.redactSensitiveData(body)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
	}

	return redacted
}

// redactSensitiveData replaces access tokens and secrets with [REDACTED]
//
// Covers query strings and form bodies (access_token=...) as well as JSON
// fields ("access_token": "...").
func (c *Client) redactSensitiveData(s string) string {
	if !c.redact {
		return s
	}
	result := s
	for _, r := range c.redactions {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// checkContextCancellation checks if context is canceled or deadline exceeded
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
