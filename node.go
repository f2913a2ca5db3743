// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Node is the client-side representative of a single remote graph object
//
// A Node is immutable after construction: operations never modify it, and
// Fetch returns a new Node carrying a fresh attribute snapshot.
type Node struct {
	identifier  string
	endpoint    string
	accessToken string
	attributes  Res
	client      *Client
}

// Node creates a node for identifier; no request is made
//
// The endpoint is the client root URL joined with the identifier.
//
// Example:
//
//	me := client.Node("me", fbgraph.WithAccessToken(token))
//	fmt.Println(me.Endpoint()) // https://graph.facebook.com/me
func (c *Client) Node(identifier string, opts ...func(*Node)) *Node {
	n := &Node{
		identifier: identifier,
		endpoint:   joinPath(c.RootURL, identifier),
		client:     c,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewNode creates a node bound to DefaultClient
func NewNode(identifier string, opts ...func(*Node)) *Node {
	return DefaultClient().Node(identifier, opts...)
}

// Identifier returns the node identifier
func (n *Node) Identifier() string {
	return n.identifier
}

// Endpoint returns the node URL
func (n *Node) Endpoint() string {
	return n.endpoint
}

// AccessToken returns the default access token of the node
func (n *Node) AccessToken() string {
	return n.accessToken
}

// Attributes returns the attribute snapshot taken by Fetch
//
// For a node that was not fetched, the snapshot is null.
func (n *Node) Attributes() Res {
	return n.attributes
}

// Get returns an attribute by name, ignoring case
func (n *Node) Get(key string) gjson.Result {
	return n.attributes.Field(key)
}

// joinPath joins URL path segments with a single slash, skipping empty ones
func joinPath(base string, segments ...string) string {
	joined := base
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		joined = strings.TrimRight(joined, "/") + "/" + strings.TrimLeft(seg, "/")
	}
	return joined
}
