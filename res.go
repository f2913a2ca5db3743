// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Res represents a decoded Graph API response
//
// The payload is one of: a JSON object, an array of objects, the literal
// true, or null. Keys can be looked up by exact name (Get), by gjson path
// (GetPath) or case-insensitively (Field).
//
// Example:
//
//	res, err := node.Update(ctx, fbgraph.Param("message", fbgraph.String("hello")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Bool() {
//	    fmt.Println("updated")
//	}
//	id := res.Get("id").String()
type Res struct {
	result gjson.Result
}

// ParseRes wraps a JSON document in a Res
//
// An empty string yields a null Res.
func ParseRes(raw string) Res {
	if strings.TrimSpace(raw) == "" {
		return Res{}
	}
	return Res{result: gjson.Parse(raw)}
}

// Bool reports whether the payload is the literal true
func (r Res) Bool() bool {
	return r.result.Type == gjson.True
}

// IsNull reports whether the payload is null or absent
func (r Res) IsNull() bool {
	return !r.result.Exists() || r.result.Type == gjson.Null
}

// IsObject reports whether the payload is a JSON object
func (r Res) IsObject() bool {
	return r.result.IsObject()
}

// IsArray reports whether the payload is a JSON array
func (r Res) IsArray() bool {
	return r.result.IsArray()
}

// Get returns the value stored under key
//
// The key is matched literally, so keys containing dots or wildcards need no
// escaping. Returns an empty gjson.Result when the key is missing.
func (r Res) Get(key string) gjson.Result {
	var found gjson.Result
	r.result.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

// Field returns the value stored under key, ignoring case
//
// An exact match wins over a case-insensitive one.
func (r Res) Field(key string) gjson.Result {
	if v := r.Get(key); v.Exists() {
		return v
	}
	var found gjson.Result
	r.result.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(k.String(), key) {
			found = v
			return false
		}
		return true
	})
	return found
}

// Has reports whether key is present in an object payload
func (r Res) Has(key string) bool {
	return r.Get(key).Exists()
}

// GetPath retrieves a value using a gjson path
//
// Example paths:
//   - "name" - top level field
//   - "location.city" - nested field
//   - "data.#.id" - all ids of a connection payload
func (r Res) GetPath(path string) gjson.Result {
	if !r.result.Exists() {
		return gjson.Result{}
	}
	return r.result.Get(path)
}

// Keys returns the object keys in document order
func (r Res) Keys() []string {
	if !r.result.IsObject() {
		return nil
	}
	var keys []string
	r.result.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Map returns the object fields keyed by name
func (r Res) Map() map[string]gjson.Result {
	if !r.result.IsObject() {
		return nil
	}
	return r.result.Map()
}

// Array returns the elements of an array payload
//
// An object payload is returned as a single element.
func (r Res) Array() []Res {
	if r.IsNull() {
		return nil
	}
	if !r.result.IsArray() {
		return []Res{r}
	}
	items := r.result.Array()
	out := make([]Res, 0, len(items))
	for _, item := range items {
		out = append(out, Res{result: item})
	}
	return out
}

// JSON returns the raw JSON text of the payload, "null" when absent
func (r Res) JSON() string {
	if !r.result.Exists() {
		return "null"
	}
	return r.result.Raw
}

// Unmarshal decodes the payload into v using encoding/json
//
// Example:
//
//	var user struct {
//	    Name string `json:"name"`
//	}
//	if err := node.Attributes().Unmarshal(&user); err != nil {
//	    log.Fatal(err)
//	}
func (r Res) Unmarshal(v any) error {
	if err := json.Unmarshal([]byte(r.JSON()), v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// decodeBody interprets a 2xx response body
//
// The literal false is the API's answer for numeric identifiers that do not
// exist; alphabetic identifiers get a regular error envelope instead.
func decodeBody(operation, body string) (Res, error) {
	switch strings.TrimSpace(body) {
	case "true":
		return ParseRes("true"), nil
	case "false":
		return Res{}, &GraphError{
			Kind:      KindNotFound,
			Operation: operation,
			Message:   notFoundMessage,
			Body:      body,
		}
	case "null", "":
		return Res{}, nil
	}

	if !gjson.Valid(body) {
		return Res{}, &GraphError{
			Kind:      KindException,
			Operation: operation,
			Message:   "response body is not valid JSON",
			Body:      body,
			Err:       ErrInvalidResponse,
		}
	}
	return ParseRes(body), nil
}
