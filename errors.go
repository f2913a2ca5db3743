// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies a failed Graph API call
type ErrorKind int

const (
	// KindException is a failure whose error body could not be interpreted
	KindException ErrorKind = iota

	// KindNotFound means the requested object does not exist
	KindNotFound

	// KindUnauthorized means the access token was rejected (OAuth error types)
	KindUnauthorized

	// KindBadRequest is any other structured error reported by the API
	KindBadRequest
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad request"
	default:
		return "exception"
	}
}

// Sentinel errors matched by GraphError.Is
//
// Example:
//
//	_, err := node.Fetch(ctx)
//	if errors.Is(err, fbgraph.ErrNotFound) {
//	    // object does not exist
//	}
var (
	ErrNotFound     = errors.New("fbgraph: not found")
	ErrUnauthorized = errors.New("fbgraph: unauthorized")
	ErrBadRequest   = errors.New("fbgraph: bad request")
	ErrException    = errors.New("fbgraph: exception")
)

// Errors that are not classified API failures
var (
	// ErrUnexpectedResponse is returned by Fetch when the payload is not a JSON object
	ErrUnexpectedResponse = errors.New("fbgraph: unexpected response")

	// ErrInvalidResponse is wrapped when a 2xx body is not valid JSON
	ErrInvalidResponse = errors.New("fbgraph: invalid JSON response")
)

// notFoundMessage is used when the API answers a lookup with a bare false
const notFoundMessage = "Graph API returned false, so probably it means your requested object is not found."

// GraphError represents a classified Graph API error with operation context
type GraphError struct {
	// Kind of failure
	Kind ErrorKind

	// Operation name that failed (get, post, delete)
	Operation string

	// HTTP status code, 0 when the failure was inferred from a 2xx body
	StatusCode int

	// Type is error.type from the API error envelope (e.g. OAuthException)
	Type string

	// Code is error.code from the API error envelope
	Code int64

	// Subcode is error.error_subcode from the API error envelope
	Subcode int64

	// Human-readable error message
	Message string

	// Body is the raw response body
	Body string

	// Err is the underlying cause, if any
	Err error

	// redact strips credentials from Body in DetailedError
	redact func(string) string
}

// Error implements the error interface
func (e *GraphError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fbgraph: %s failed: %s: %s (status: %d)", e.Operation, e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("fbgraph: %s failed: %s: %s", e.Operation, e.Kind, e.Message)
}

// DetailedError returns the full error message including the raw response body
//
// This should only be used in secure logging contexts. The body is passed
// through the client's redactor when one was configured.
func (e *GraphError) DetailedError() string {
	if e.Body == "" {
		return e.Error()
	}
	body := e.Body
	if e.redact != nil {
		body = e.redact(body)
	}
	return fmt.Sprintf("%s (body: %s)", e.Error(), body)
}

// Is reports whether target is the sentinel for this error's kind
func (e *GraphError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrException:
		return e.Kind == KindException
	}
	return false
}

// Unwrap returns the underlying cause
func (e *GraphError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFound GraphError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is an Unauthorized GraphError
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsBadRequest reports whether err is a BadRequest GraphError
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// classifyErrorBody turns a non-2xx response into a GraphError
//
// The body is expected to carry {"error": {"type": ..., "message": ...}}.
// OAuth error types map to Unauthorized, every other type to BadRequest.
// A body that is not JSON yields the generic Exception kind.
func classifyErrorBody(operation string, statusCode int, status string, body string) *GraphError {
	gerr := &GraphError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
	}

	if !gjson.Valid(body) {
		gerr.Kind = KindException
		gerr.Message = status
		return gerr
	}

	envelope := gjson.Get(body, "error")
	gerr.Type = envelope.Get("type").String()
	gerr.Code = envelope.Get("code").Int()
	gerr.Subcode = envelope.Get("error_subcode").Int()
	gerr.Message = envelope.Get("message").String()
	if gerr.Message == "" {
		gerr.Message = status
	}

	if strings.Contains(gerr.Type, "OAuth") {
		gerr.Kind = KindUnauthorized
	} else {
		gerr.Kind = KindBadRequest
	}
	return gerr
}
