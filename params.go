// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Reserved parameter names consumed by the client instead of being sent as
// ordinary request parameters.
const (
	ParamConnection      = "connection"
	ParamConnectionScope = "connection_scope"
	ParamMethod          = "method"
	ParamAccessToken     = "access_token"
)

// ErrRawNotAllowed is returned when a raw byte stream is sent with GET or DELETE
var ErrRawNotAllowed = errors.New("fbgraph: raw values can only be sent in a POST body")

// Value is a single request parameter value
//
// A Value is one of three variants:
//   - scalar: String, Int, Float, Bool - sent as text
//   - raw: Raw - a byte stream sent as a multipart file part
//   - composite: JSON, JSONBody - JSON-encoded before sending
type Value interface {
	// text returns the wire representation of a scalar or composite value
	text() (string, error)

	// blank reports whether the value is dropped before sending
	blank() bool
}

type scalarValue string

func (v scalarValue) text() (string, error) { return string(v), nil }
func (v scalarValue) blank() bool            { return strings.TrimSpace(string(v)) == "" }

// String returns a scalar string value
func String(s string) Value {
	return scalarValue(s)
}

// Int returns a scalar integer value
func Int(n int64) Value {
	return scalarValue(strconv.FormatInt(n, 10))
}

// Float returns a scalar floating point value
func Float(f float64) Value {
	return scalarValue(strconv.FormatFloat(f, 'f', -1, 64))
}

// Bool returns a scalar boolean value
func Bool(b bool) Value {
	return scalarValue(strconv.FormatBool(b))
}

type rawValue struct {
	filename string
	r        io.Reader
}

func (v rawValue) text() (string, error) { return "", ErrRawNotAllowed }
func (v rawValue) blank() bool            { return v.r == nil }

// Raw returns a byte stream value, uploaded as a multipart file named filename
//
// Example:
//
//	f, _ := os.Open("photo.jpg")
//	defer f.Close()
//	res, err := node.Update(ctx,
//	    fbgraph.OnConnection("photos"),
//	    fbgraph.Param("source", fbgraph.Raw("photo.jpg", f)),
//	    fbgraph.Param("message", fbgraph.String("Hello")))
func Raw(filename string, r io.Reader) Value {
	return rawValue{filename: filename, r: r}
}

type compositeValue struct {
	v any
}

func (v compositeValue) text() (string, error) {
	data, err := json.Marshal(v.v)
	if err != nil {
		return "", fmt.Errorf("encode parameter: %w", err)
	}
	return string(data), nil
}

func (v compositeValue) blank() bool {
	s, err := v.text()
	if err != nil {
		return false
	}
	return isBlankJSON(s)
}

// JSON returns a composite value encoded with encoding/json when sent
//
// Example:
//
//	fbgraph.Param("privacy", fbgraph.JSON(map[string]string{"value": "EVERYONE"}))
func JSON(v any) Value {
	return compositeValue{v: v}
}

type bodyValue struct {
	body Body
}

func (v bodyValue) text() (string, error) {
	s, err := v.body.String()
	if err != nil {
		return "", fmt.Errorf("encode parameter: %w", err)
	}
	return s, nil
}

func (v bodyValue) blank() bool {
	return v.body.Err() == nil && isBlankJSON(v.body.Res())
}

// JSONBody returns a composite value built with the Body builder
//
// Example:
//
//	privacy := fbgraph.Body{}.Set("value", "CUSTOM").Set("friends", "ALL_FRIENDS")
//	fbgraph.Param("privacy", fbgraph.JSONBody(privacy))
func JSONBody(b Body) Value {
	return bodyValue{body: b}
}

func isBlankJSON(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "[]", "{}", `""`:
		return true
	}
	return false
}

// Params is an ordered mapping from parameter name to Value
//
// The zero value is an empty mapping ready to use. Setting an existing key
// replaces its value and keeps its position.
type Params struct {
	keys   []string
	values map[string]Value
}

// Set stores v under key
func (p *Params) Set(key string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

// Get returns the value stored under key
func (p *Params) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key
func (p *Params) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the parameter names in insertion order
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters
func (p *Params) Len() int {
	return len(p.keys)
}

// clone returns an independent copy
func (p *Params) clone() Params {
	out := Params{}
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// compact removes blank values
func (p *Params) compact() {
	for _, k := range p.Keys() {
		if v := p.values[k]; v == nil || v.blank() {
			p.Delete(k)
		}
	}
}

// hasRaw reports whether any value is a byte stream
func (p *Params) hasRaw() bool {
	for _, k := range p.keys {
		if _, ok := p.values[k].(rawValue); ok {
			return true
		}
	}
	return false
}

// encode renders the parameters as url.Values for a query string or form body
func (p *Params) encode() (url.Values, error) {
	values := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		s, err := p.values[k].text()
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		values.Set(k, s)
	}
	return values, nil
}

// writeMultipart writes the parameters as multipart form fields and files
func (p *Params) writeMultipart(w *multipart.Writer) error {
	for _, k := range p.keys {
		if raw, ok := p.values[k].(rawValue); ok {
			part, err := w.CreateFormFile(k, raw.filename)
			if err != nil {
				return fmt.Errorf("parameter %q: %w", k, err)
			}
			if _, err := io.Copy(part, raw.r); err != nil {
				return fmt.Errorf("parameter %q: %w", k, err)
			}
			continue
		}
		s, err := p.values[k].text()
		if err != nil {
			return fmt.Errorf("parameter %q: %w", k, err)
		}
		if err := w.WriteField(k, s); err != nil {
			return fmt.Errorf("parameter %q: %w", k, err)
		}
	}
	return nil
}
