// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"fmt"

	"golang.org/x/oauth2"
)

// credential yields the raw access token string sent as the access_token
// parameter. Every token form accepted by the package implements it.
type credential interface {
	accessToken() (string, error)
}

// staticToken is an access token given as plain text
type staticToken string

func (t staticToken) accessToken() (string, error) {
	return string(t), nil
}

// oauth2Token wraps a token obtained through an OAuth2 flow
type oauth2Token struct {
	token *oauth2.Token
}

func (t oauth2Token) accessToken() (string, error) {
	if t.token == nil {
		return "", nil
	}
	return t.token.AccessToken, nil
}

// tokenSource asks an oauth2.TokenSource for a token on every request,
// so refreshing sources stay current.
type tokenSource struct {
	source oauth2.TokenSource
}

func (t tokenSource) accessToken() (string, error) {
	if t.source == nil {
		return "", nil
	}
	tok, err := t.source.Token()
	if err != nil {
		return "", fmt.Errorf("token source: %w", err)
	}
	return tok.AccessToken, nil
}

// normalizeToken converts any accepted token form to its raw string
//
// A nil credential yields an empty token.
func normalizeToken(c credential) (string, error) {
	if c == nil {
		return "", nil
	}
	return c.accessToken()
}
