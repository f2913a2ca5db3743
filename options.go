// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Client configuration options using the functional options pattern

// RootURL sets the Graph API root URL (default: https://graph.facebook.com)
//
// A versioned root such as "https://graph.facebook.com/v19.0" is accepted.
func RootURL(rootURL string) func(*Client) {
	return func(c *Client) {
		c.RootURL = rootURL
	}
}

// HTTPClient sets the underlying HTTP client
//
// Connection reuse, proxies and TLS are configured on this client. When not
// set, a dedicated client using http.DefaultTransport is created.
func HTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Timeout sets the transport timeout of the HTTP client (default: none)
//
// This applies to the client created by NewClient. A client passed with
// HTTPClient is copied first and is left unchanged.
func Timeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.Timeout = duration
	}
}

// UserAgent sets the User-Agent header sent with every request
func UserAgent(userAgent string) func(*Client) {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Access tokens are redacted from all logged URLs and bodies.
//
// Example:
//
//	logger := fbgraph.NewDefaultLogger(fbgraph.LogLevelDebug)
//	client, _ := fbgraph.NewClient(fbgraph.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in logs
//
// Default: disabled (false)
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Redact enables or disables redaction of credentials in logs and
// DetailedError output (default: true)
func Redact(enabled bool) func(*Client) {
	return func(c *Client) {
		c.redact = enabled
	}
}

// Node options

// WithAccessToken sets the default access token of a node
func WithAccessToken(token string) func(*Node) {
	return func(n *Node) {
		n.accessToken = token
	}
}

// WithOAuth2Token sets the default access token of a node from an OAuth2 token
func WithOAuth2Token(token *oauth2.Token) func(*Node) {
	return func(n *Node) {
		n.accessToken, _ = normalizeToken(oauth2Token{token: token})
	}
}

// WithAttributes sets the attribute snapshot of a node
func WithAttributes(attributes Res) func(*Node) {
	return func(n *Node) {
		n.attributes = attributes
	}
}

// Request modifiers for individual operations

// AccessToken overrides the node access token for this request only
func AccessToken(token string) func(*Req) {
	return func(req *Req) {
		req.token = staticToken(token)
	}
}

// OAuth2Token overrides the node access token for this request only
func OAuth2Token(token *oauth2.Token) func(*Req) {
	return func(req *Req) {
		req.token = oauth2Token{token: token}
	}
}

// TokenSource overrides the node access token for this request only
//
// The source is asked for a token right before the request is sent.
//
// Example:
//
//	conf := &oauth2.Config{ /* ... */ }
//	ts := conf.TokenSource(ctx, tok)
//	me, err := client.Fetch(ctx, "me", fbgraph.TokenSource(ts))
func TokenSource(source oauth2.TokenSource) func(*Req) {
	return func(req *Req) {
		req.token = tokenSource{source: source}
	}
}

// OnConnection targets a connection of the node (endpoint/connection)
//
// Example:
//
//	// POST /me/feed
//	res, err := me.Update(ctx,
//	    fbgraph.OnConnection("feed"),
//	    fbgraph.Param("message", fbgraph.String("Hello")))
func OnConnection(connection string) func(*Req) {
	return func(req *Req) {
		req.Connection = connection
	}
}

// ConnectionScope appends a scope after the connection (endpoint/connection/scope)
func ConnectionScope(scope string) func(*Req) {
	return func(req *Req) {
		req.ConnectionScope = scope
	}
}

// Param sets a request parameter
//
// Reserved names are routed to their dedicated request fields: "connection"
// and "connection_scope" extend the endpoint, "access_token" overrides the
// token, "method" is ignored (the operation decides the HTTP method).
//
// Example:
//
//	res, err := node.Fetch(ctx,
//	    fbgraph.Param("fields", fbgraph.String("id,name,email")),
//	    fbgraph.Param("limit", fbgraph.Int(10)))
func Param(key string, value Value) func(*Req) {
	return func(req *Req) {
		switch key {
		case ParamConnection:
			req.Connection = valueText(value)
		case ParamConnectionScope:
			req.ConnectionScope = valueText(value)
		case ParamAccessToken:
			req.token = staticToken(valueText(value))
		case ParamMethod:
		default:
			req.Params.Set(key, value)
		}
	}
}

// WithParams sets every parameter of params, in order
func WithParams(params Params) func(*Req) {
	return func(req *Req) {
		for _, k := range params.Keys() {
			v, _ := params.Get(k)
			Param(k, v)(req)
		}
	}
}

// CachedCollection supplies a pre-fetched collection to Connection,
// which then performs no request
func CachedCollection(collection Collection) func(*Req) {
	return func(req *Req) {
		req.cached = &collection
	}
}

// RequestTimeout returns a request modifier that bounds this request's
// context with a timeout
func RequestTimeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}

// valueText returns the text of a reserved parameter value, empty on error
func valueText(v Value) string {
	if v == nil {
		return ""
	}
	s, err := v.text()
	if err != nil {
		return ""
	}
	return s
}
