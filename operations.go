// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"context"
	"fmt"

	"github.com/tidwall/sjson"
)

// Fetch retrieves the node and returns a new Node holding its attributes
//
// A token given with AccessToken, OAuth2Token or TokenSource overrides the
// node's own token for this call. The id field of the response becomes the
// identifier of the returned node, the remaining fields its attributes. The
// receiver is not modified.
//
// Example:
//
//	me, err := client.Node("me", fbgraph.WithAccessToken(token)).Fetch(ctx,
//	    fbgraph.Param("fields", fbgraph.String("id,name")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(me.Identifier(), me.Get("name").String())
//
// Returns ErrUnexpectedResponse when the API answers with something other
// than a JSON object.
func (n *Node) Fetch(ctx context.Context, mods ...func(*Req)) (*Node, error) {
	req := newReq(mods)

	token, err := n.resolveToken(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	res, err := n.request(ctx, MethodGet, req, token)
	if err != nil {
		return nil, err
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("fetch %s: %w: %s", n.identifier, ErrUnexpectedResponse, truncate(res.JSON()))
	}

	identifier := n.identifier
	attributes := res.JSON()
	if id := res.Get("id"); id.Exists() {
		identifier = id.String()
		attributes, err = sjson.Delete(attributes, "id")
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", n.identifier, err)
		}
	}

	n.client.logger.Debug(ctx, "Graph API node fetched",
		"identifier", identifier)

	return n.client.Node(identifier,
		WithAccessToken(token),
		WithAttributes(ParseRes(attributes))), nil
}

// Fetch is a shortcut for client.Node(identifier).Fetch(ctx, mods...)
func (c *Client) Fetch(ctx context.Context, identifier string, mods ...func(*Req)) (*Node, error) {
	return c.Node(identifier).Fetch(ctx, mods...)
}

// Connection retrieves a connection of the node
//
// Without CachedCollection, one GET is sent to endpoint/connection (plus
// /scope when ConnectionScope is given) and the result is wrapped in a
// Collection. With CachedCollection no request is made.
//
// Example:
//
//	friends, err := me.Connection(ctx, "friends", fbgraph.Param("limit", fbgraph.Int(25)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range friends.Collection.Items {
//	    fmt.Println(f.Get("name").String())
//	}
func (n *Node) Connection(ctx context.Context, connection string, mods ...func(*Req)) (Connection, error) {
	req := newReq(mods)
	req.Connection = connection
	if req.ConnectionScope == "" {
		if v, ok := req.Params.Get(ParamConnectionScope); ok {
			req.ConnectionScope = valueText(v)
		}
	}

	conn := Connection{
		Node:  n,
		Name:  connection,
		Scope: req.ConnectionScope,
	}

	if req.cached != nil {
		conn.Collection = *req.cached
		return conn, nil
	}

	token, err := n.resolveToken(req)
	if err != nil {
		return Connection{}, fmt.Errorf("connection %s: %w", connection, err)
	}

	res, err := n.request(ctx, MethodGet, req, token)
	if err != nil {
		return Connection{}, err
	}
	conn.Collection = NewCollection(res)
	return conn, nil
}

// Update posts the request parameters to the node endpoint
//
// The response is returned as decoded; its meaning (true, a new id, ...)
// depends on the field or connection being updated.
//
// Example:
//
//	res, err := me.Update(ctx,
//	    fbgraph.OnConnection("feed"),
//	    fbgraph.Param("message", fbgraph.String("Hello, world")))
//	postID := res.Get("id").String()
func (n *Node) Update(ctx context.Context, mods ...func(*Req)) (Res, error) {
	req := newReq(mods)
	token, err := n.resolveToken(req)
	if err != nil {
		return Res{}, fmt.Errorf("update: %w", err)
	}
	return n.request(ctx, MethodPost, req, token)
}

// Destroy sends a DELETE to the node endpoint, or to one of its connections
// when OnConnection is given
func (n *Node) Destroy(ctx context.Context, mods ...func(*Req)) (Res, error) {
	req := newReq(mods)
	token, err := n.resolveToken(req)
	if err != nil {
		return Res{}, fmt.Errorf("destroy: %w", err)
	}
	return n.request(ctx, MethodDelete, req, token)
}

// resolveToken returns the request token, falling back to the node token
func (n *Node) resolveToken(req *Req) (string, error) {
	if req.token == nil {
		return n.accessToken, nil
	}
	return normalizeToken(req.token)
}

// request builds the endpoint and parameters of req and executes it
func (n *Node) request(ctx context.Context, method string, req *Req, token string) (Res, error) {
	target, params := n.buildRequest(req, token)
	return n.client.execute(ctx, method, target, &params, req.Timeout)
}

// buildRequest computes the request target and the parameters to send
//
//  1. Start from the node endpoint
//  2. Append connection and connection scope as path segments
//  3. Add the access token when one is resolved
//  4. Drop blank parameters
//
// The query string (GET, DELETE) or body (POST) is rendered by the client.
func (n *Node) buildRequest(req *Req, token string) (string, Params) {
	params := req.Params.clone()

	// reserved keys set directly on Req.Params
	connection, scope := req.Connection, req.ConnectionScope
	if v, ok := params.Get(ParamConnection); ok {
		if connection == "" {
			connection = valueText(v)
		}
		params.Delete(ParamConnection)
	}
	if v, ok := params.Get(ParamConnectionScope); ok {
		if scope == "" {
			scope = valueText(v)
		}
		params.Delete(ParamConnectionScope)
	}
	params.Delete(ParamMethod)

	target := joinPath(n.endpoint, connection, scope)

	if token != "" {
		params.Set(ParamAccessToken, String(token))
	}
	params.compact()

	return target, params
}

// truncate shortens a payload for error messages
func truncate(s string) string {
	if len(s) <= 100 {
		return s
	}
	return s[:100] + "..."
}
