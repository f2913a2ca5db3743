// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package fbgraph provides a simple, fluent API for the Facebook Graph API.
//
// A Node represents one remote graph object. It knows its identifier, its
// endpoint (root URL joined with the identifier) and an optional access
// token, and exposes four operations: Fetch, Connection, Update and Destroy.
// Each operation sends exactly one HTTP request.
//
// # Quick Start
//
//	client, err := fbgraph.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	me, err := client.Fetch(ctx, "me", fbgraph.AccessToken(token))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(me.Identifier(), me.Get("name").String())
//
// # Connections
//
//	friends, err := me.Connection(ctx, "friends")
//	for _, friend := range friends.Collection.Items {
//	    fmt.Println(friend.Get("name").String())
//	}
//
// # Parameters
//
// Parameters are typed values: scalars (String, Int, Float, Bool) are sent
// as text, Raw byte streams are uploaded as multipart files and composite
// values (JSON, JSONBody) are JSON-encoded. Blank values are dropped.
//
//	res, err := me.Update(ctx,
//	    fbgraph.OnConnection("feed"),
//	    fbgraph.Param("message", fbgraph.String("Hello")),
//	    fbgraph.Param("privacy", fbgraph.JSONBody(fbgraph.Body{}.Set("value", "SELF"))))
//
// # Responses
//
// Responses are wrapped in Res, backed by gjson. A literal true body yields
// a Res whose Bool reports true, null yields a null Res. A literal false
// body is the API's way of saying a numeric identifier does not exist and
// is returned as a NotFound error.
//
// # Error Handling
//
//	_, err := client.Fetch(ctx, "1234567890")
//	switch {
//	case fbgraph.IsNotFound(err):
//	case fbgraph.IsUnauthorized(err):  // OAuth error types
//	case fbgraph.IsBadRequest(err):    // any other API error
//	case errors.Is(err, fbgraph.ErrException): // unparseable error body
//	}
//
// No request is retried.
//
// # References
//
//   - Graph API: https://developers.facebook.com/docs/graph-api
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package fbgraph
