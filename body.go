// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON parameter values
// using sjson for path-based manipulation.
//
// Some Graph API parameters (privacy, targeting, attachments) take a JSON
// document instead of plain text. Wrap the built Body with JSONBody to send it.
//
// The Body builder tracks errors internally to enable method chaining
// while providing error checking through String() or Err() methods.
//
// Example:
//
//	privacy := fbgraph.Body{}.
//	    Set("value", "CUSTOM").
//	    Set("allow", "1234,5678")
//
//	res, err := node.Update(ctx,
//	    fbgraph.OnConnection("feed"),
//	    fbgraph.Param("message", fbgraph.String("hello")),
//	    fbgraph.Param("privacy", fbgraph.JSONBody(privacy)))
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "targeting.countries").
// Once an error occurs, all subsequent operations are no-ops that preserve the error.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// SetRaw sets a raw JSON fragment at the specified path and returns a new Body
//
// Example:
//
//	body := fbgraph.Body{}.SetRaw("countries", `["US","DE"]`)
func (b Body) SetRaw(path string, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified JSON path and returns a new Body
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the JSON string representation and any error encountered during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson
//
// If an error occurred during building, this returns an empty string.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice representation and any error encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
