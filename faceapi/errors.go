package faceapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is returned when the service could not be reached or the
	// request timed out
	ErrTransport = errors.New("transport failure")
	// ErrAuth is returned when the service rejects the subscription key
	ErrAuth = errors.New("authentication failure")
	// ErrService is returned for any other non successful response status
	ErrService = errors.New("service error")
	// ErrMalformed is returned when the response body can not be decoded
	ErrMalformed = errors.New("malformed response")
	// ErrRateLimited is returned when the client side request limit did not
	// allow a request before the context ended.  No request was sent
	ErrRateLimited = errors.New("client rate limited")
)

// APIError annotates a failed face analysis call with the response details
// the service returned, if any
type APIError struct {
	Op      string
	Status  int
	Code    string
	Message string
	// Kind is one of ErrTransport, ErrAuth, ErrService, ErrMalformed or
	// ErrRateLimited
	Kind error
	Err  error
}

// Error implements the error interface
func (e *APIError) Error() string {

	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)

	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d", e.Status)

		if e.Code != "" {
			msg += ", code " + e.Code
		}

		msg += ")"
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both the error kind and underlying cause to errors.Is/As
func (e *APIError) Unwrap() []error {

	errs := []error{e.Kind}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// serviceError is the error envelope returned by the service on failure
type serviceError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
