package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation is returned when request input is missing or malformed
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUnauthorized is returned when proxy or webhook authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrUpstream is returned when the Shopify API call fails at the transport
// level or the GraphQL envelope carries top-level errors
type ErrUpstream struct {
	Message string
	Err     error
}

func (e *ErrUpstream) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "upstream error"
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrBusiness is returned when the mutation succeeded at the transport level
// but Shopify reported userErrors
type ErrBusiness struct {
	Message string
	Field   []string
}

func (e *ErrBusiness) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "business error"
}

// Upstream wraps a transport failure, preserving the cause.
func Upstream(err error) *ErrUpstream {
	return &ErrUpstream{Err: err}
}

// Upstreamf builds an upstream error from a message.
func Upstreamf(format string, args ...interface{}) *ErrUpstream {
	return &ErrUpstream{Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to the status code the client contract expects:
// validation 400, auth 401, business (userErrors) 400, anything else 500.
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		unauthorized *ErrUnauthorized
		business     *ErrBusiness
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &business):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
