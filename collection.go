// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

// Collection is the decoded payload of a connection
//
// Connection payloads usually look like {"data": [...], "paging": {...}};
// a bare array is treated as the data.
type Collection struct {
	// Items are the elements of the data array
	Items []Res

	// Paging is the paging object, null when absent
	Paging Res

	// Summary is the summary object, null when absent
	Summary Res

	raw Res
}

// NewCollection wraps a decoded connection payload
func NewCollection(res Res) Collection {
	if res.IsArray() {
		return Collection{Items: res.Array(), raw: res}
	}
	c := Collection{raw: res}
	if data := res.Get("data"); data.Exists() {
		c.Items = ParseRes(data.Raw).Array()
	} else if res.IsObject() {
		c.Items = []Res{res}
	}
	if paging := res.Get("paging"); paging.Exists() {
		c.Paging = ParseRes(paging.Raw)
	}
	if summary := res.Get("summary"); summary.Exists() {
		c.Summary = ParseRes(summary.Raw)
	}
	return c
}

// Len returns the number of items
func (c Collection) Len() int {
	return len(c.Items)
}

// Raw returns the payload the collection was built from
func (c Collection) Raw() Res {
	return c.raw
}

// Next returns the paging.next URL, empty when there is none
//
// The URL is not followed.
func (c Collection) Next() string {
	return c.Paging.Get("next").String()
}

// Previous returns the paging.previous URL, empty when there is none
func (c Collection) Previous() string {
	return c.Paging.Get("previous").String()
}

// Connection bundles the owning node, the connection name and its collection
type Connection struct {
	// Node owning the connection
	Node *Node

	// Name of the connection (e.g. friends, photos)
	Name string

	// Scope qualifier, empty when none
	Scope string

	// Collection holds the connection contents
	Collection Collection
}
