// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package http

import "errors"

// Authorization header parsing errors. The auth middleware answers 401 for
// each of them; matched with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader: the request carries no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header cannot be split into a
	// scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme is present but the token part is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
