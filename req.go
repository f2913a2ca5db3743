// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import "time"

// HTTP methods used against the Graph API
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodDelete = "DELETE"
)

// Req represents the options of a single node operation
//
// Req is populated through request modifiers passed to Fetch, Connection,
// Update and Destroy. The reserved parameters (connection, connection scope,
// access token) live in dedicated fields and never reach Params.
//
// Example:
//
//	res, err := node.Destroy(ctx,
//	    fbgraph.OnConnection("likes"),
//	    fbgraph.AccessToken(token))
type Req struct {
	// Connection is appended to the node endpoint as a path segment
	Connection string

	// ConnectionScope is appended after Connection as a path segment
	ConnectionScope string

	// Params are the parameters sent to the API
	Params Params

	// Timeout is the request-specific timeout
	// Bounds the context of this single request when set
	Timeout time.Duration

	// token overrides the node access token for this request
	token credential

	// cached is a pre-fetched collection for Connection
	cached *Collection
}

// newReq applies modifiers onto an empty Req
func newReq(mods []func(*Req)) *Req {
	req := &Req{}
	for _, mod := range mods {
		if mod != nil {
			mod(req)
		}
	}
	return req
}
