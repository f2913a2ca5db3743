// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"bytes"
	"errors"
	"io"
	"math"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestValueText tests the wire representation of each value variant
func TestValueText(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "string", value: String("id,name"), want: "id,name"},
		{name: "int", value: Int(25), want: "25"},
		{name: "negative int", value: Int(-1), want: "-1"},
		{name: "float", value: Float(1.25), want: "1.25"},
		{name: "bool true", value: Bool(true), want: "true"},
		{name: "bool false", value: Bool(false), want: "false"},
		{name: "slice", value: JSON([]int{1, 2}), want: "[1,2]"},
		{name: "map", value: JSON(map[string]string{"value": "EVERYONE"}), want: `{"value":"EVERYONE"}`},
		{name: "body", value: JSONBody(Body{}.Set("value", "SELF")), want: `{"value":"SELF"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.text()
			if err != nil {
				t.Fatalf("text() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("text() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestValueTextErrors tests values that cannot be rendered as text
func TestValueTextErrors(t *testing.T) {
	if _, err := Raw("a.jpg", strings.NewReader("x")).text(); !errors.Is(err, ErrRawNotAllowed) {
		t.Errorf("Raw text() error = %v, want ErrRawNotAllowed", err)
	}
	if _, err := JSON(math.Inf(1)).text(); err == nil {
		t.Errorf("JSON(+Inf) text() should fail")
	}
	if _, err := JSONBody(Body{}.Set("", "x")).text(); err == nil {
		t.Errorf("JSONBody with builder error should fail")
	}
}

// TestValueBlank tests which values are dropped before sending
func TestValueBlank(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{name: "empty string", value: String(""), want: true},
		{name: "whitespace string", value: String(" \t"), want: true},
		{name: "string", value: String("x"), want: false},
		{name: "zero int", value: Int(0), want: false},
		{name: "false", value: Bool(false), want: false},
		{name: "nil JSON", value: JSON(nil), want: true},
		{name: "empty slice", value: JSON([]string{}), want: true},
		{name: "empty map", value: JSON(map[string]any{}), want: true},
		{name: "empty string JSON", value: JSON(""), want: true},
		{name: "non-empty slice", value: JSON([]string{""}), want: false},
		{name: "empty body", value: JSONBody(Body{}), want: true},
		{name: "body", value: JSONBody(Body{}.Set("a", 1)), want: false},
		{name: "failed body", value: JSONBody(Body{}.Set("", 1)), want: false},
		{name: "raw", value: Raw("a", strings.NewReader("")), want: false},
		{name: "raw without reader", value: Raw("a", nil), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.blank(); got != tt.want {
				t.Errorf("blank() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestParamsOrdering tests insertion order, replacement and deletion
func TestParamsOrdering(t *testing.T) {
	var p Params
	p.Set("fields", String("id"))
	p.Set("limit", Int(10))
	p.Set("after", String("abc"))
	p.Set("fields", String("id,name"))

	if diff := cmp.Diff([]string{"fields", "limit", "after"}, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := p.Get("fields"); !ok || valueText(v) != "id,name" {
		t.Errorf("Get(fields) = %v, %v", v, ok)
	}

	p.Delete("limit")
	p.Delete("missing")
	if diff := cmp.Diff([]string{"fields", "after"}, p.Keys()); diff != "" {
		t.Errorf("Keys() after Delete mismatch (-want +got):\n%s", diff)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	keys := p.Keys()
	keys[0] = "changed"
	if p.Keys()[0] != "fields" {
		t.Errorf("Keys() exposed internal slice")
	}
}

// TestParamsCloneAndCompact tests that compaction works on an independent copy
func TestParamsCloneAndCompact(t *testing.T) {
	var p Params
	p.Set("message", String("hi"))
	p.Set("link", String(""))
	p.Set("tags", JSON([]string{}))
	p.Set("nil", nil)

	c := p.clone()
	c.compact()

	if diff := cmp.Diff([]string{"message"}, c.Keys()); diff != "" {
		t.Errorf("compacted Keys() mismatch (-want +got):\n%s", diff)
	}
	if p.Len() != 4 {
		t.Errorf("original Len() = %d, want 4", p.Len())
	}
}

// TestParamsEncode tests url.Values rendering
func TestParamsEncode(t *testing.T) {
	var p Params
	p.Set("fields", String("id,name"))
	p.Set("limit", Int(5))
	p.Set("ids", JSON([]string{"1", "2"}))

	got, err := p.encode()
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}
	want := url.Values{
		"fields": {"id,name"},
		"limit":  {"5"},
		"ids":    {`["1","2"]`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encode() mismatch (-want +got):\n%s", diff)
	}
	if enc := got.Encode(); enc != "fields=id%2Cname&ids=%5B%221%22%2C%222%22%5D&limit=5" {
		t.Errorf("Encode() = %q", enc)
	}

	p.Set("source", Raw("a.bin", strings.NewReader("x")))
	if !p.hasRaw() {
		t.Errorf("hasRaw() = false")
	}
	if _, err := p.encode(); !errors.Is(err, ErrRawNotAllowed) {
		t.Errorf("encode() error = %v, want ErrRawNotAllowed", err)
	}
}

// TestParamsWriteMultipart tests multipart rendering of files and fields
func TestParamsWriteMultipart(t *testing.T) {
	var p Params
	p.Set("message", String("caption"))
	p.Set("source", Raw("photo.jpg", strings.NewReader("JPEG")))

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := p.writeMultipart(w); err != nil {
		t.Fatalf("writeMultipart() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r := multipart.NewReader(buf, w.Boundary())
	parts := map[string]string{}
	files := map[string]string{}
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, _ := io.ReadAll(part)
		if part.FileName() != "" {
			files[part.FormName()] = part.FileName() + ":" + string(data)
		} else {
			parts[part.FormName()] = string(data)
		}
	}

	if diff := cmp.Diff(map[string]string{"message": "caption"}, parts); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"source": "photo.jpg:JPEG"}, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}
