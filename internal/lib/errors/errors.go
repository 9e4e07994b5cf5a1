package errors

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when a service is constructed without an
// API token. Detected at construction time, never deferred to the first
// call.
var ErrMissingToken = errors.New("tiny api token is required")

// APIError is a business-level failure reported inside the response
// payload. Tiny frequently answers HTTP 200 for failed operations, so
// this error is raised from the envelope's status marker, never from
// the HTTP status code.
type APIError struct {
	// StatusProcessamento is Tiny's processing-status code from the
	// response envelope.
	StatusProcessamento int
	// CodigoErro is the numeric error code accompanying the failure.
	CodigoErro int
	// Erros holds the provider's error messages in the order received.
	Erros []string
}

// Error implements the error interface. The first provider message is
// used as the primary message.
func (e *APIError) Error() string {
	msg := "unknown api error"
	if len(e.Erros) > 0 {
		msg = e.Erros[0]
	}
	return fmt.Sprintf("tiny api error %d: %s", e.CodigoErro, msg)
}

// ParseError is returned when the response body is not valid JSON,
// which means the provider answered outside its documented contract
// (an HTML error page on a 5xx, typically).
type ParseError struct {
	// HTTPStatus is the raw status code of the unparsable response,
	// kept for diagnostics.
	HTTPStatus int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable response (http status %d): %v", e.HTTPStatus, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports a wrapped-collection element that lacked its
// expected single key. Success payloads are shape-correct by contract,
// so this indicates a provider contract violation or a field-name
// mismatch on our side, not a recoverable runtime condition.
type ShapeError struct {
	// Key is the wrapper key that was expected.
	Key string
	// Index is the position of the offending element.
	Index int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("element %d is missing wrapper key %q", e.Index, e.Key)
}

// IsAPIError extracts an APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsParseError extracts a ParseError from an error chain.
func IsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	ok := errors.As(err, &parseErr)
	return parseErr, ok
}

// IsShapeError extracts a ShapeError from an error chain.
func IsShapeError(err error) (*ShapeError, bool) {
	var shapeErr *ShapeError
	ok := errors.As(err, &shapeErr)
	return shapeErr, ok
}
