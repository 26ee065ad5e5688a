package api

import (
	"errors"
	"net/http"
)

var (
	ErrApiNotFound  = NewError(http.StatusNotFound, "api not found")
	ErrCallDepth    = NewError(http.StatusLoopDetected, "call depth exceeded")
	ErrNotSupported = NewError(http.StatusMethodNotAllowed, "not supported")
)

// An Error is a failure an Api reports to its caller.
//
// The description of an Error is static: never put request data or internal details in it.
// Across the HTTP boundary an Error renders as {"msg": "<description>"}.
type Error struct {
	status      int
	header      http.Header
	description string
}

// NewError constructs an *Error with the HTTP status code and description.
func NewError(status int, description string) *Error {
	return &Error{status: status, header: make(http.Header), description: description}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.description }

// Description returns the description of e.
func (e *Error) Description() string { return e.description }

// Header returns the headers to send along with e.
func (e *Error) Header() http.Header { return e.header }

// Status returns the HTTP status code of e.
func (e *Error) Status() int { return e.status }

// Is reports whether target is an *Error with the same status and description.
// Headers are not compared.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.status == t.status && e.description == t.description
}

// WithHeader returns a copy of e setting key to val in its headers.
// Package-level Errors can safely call WithHeader.
func (e *Error) WithHeader(key, val string) *Error {
	cp := &Error{status: e.status, header: e.header.Clone(), description: e.description}
	if cp.header == nil {
		cp.header = make(http.Header)
	}

	cp.header.Set(key, val)
	return cp
}
