// Package service implements the grade and authentication operations
// behind the HTTP handlers.  Handlers stay thin adapters: they bind the
// request, call one service method and translate the result.
package service

import "net/http"

// Error is a failure the client is allowed to see.  It carries the HTTP
// status it maps to and the message placed in the response body.  Any
// other error reaching a handler is a storage failure and is converted to
// a generic 500 so internal details never leak to the caller.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func badRequest(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Message: msg} }
func unauthorized(msg string) *Error { return &Error{Status: http.StatusUnauthorized, Message: msg} }
func forbidden(msg string) *Error    { return &Error{Status: http.StatusForbidden, Message: msg} }
func notFound(msg string) *Error     { return &Error{Status: http.StatusNotFound, Message: msg} }
