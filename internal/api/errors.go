// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for transport failures.
var (
	// ErrUnauthorized indicates the token was missing or rejected. By
	// the time a caller sees it the stored token has already been
	// cleared and the logout event fired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout indicates a non-streaming request exceeded its bound.
	ErrTimeout = errors.New("request timed out")
)

// HTTPError is any non-2xx response other than 401. The body is kept
// verbatim so callers can surface the backend's detail message.
type HTTPError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// IsUnauthorized checks whether an error is the global auth failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTimeout checks whether an error is a request timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
