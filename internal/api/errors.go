package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why an API call failed.
type Kind int

const (
	// KindTransport covers network failures and bodies that could not be
	// encoded or decoded.
	KindTransport Kind = iota + 1
	// KindRejected is any non-2xx answer other than 401.
	KindRejected
	// KindUnauthenticated is a 401 answer.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrTransport       = errors.New("transport failure")
	ErrRejected        = errors.New("request rejected")
	ErrUnauthenticated = errors.New("not authenticated")
)

// Error is the single failure shape returned by every Client method.
// Message holds the response body for rejected calls and the underlying
// failure text for transport errors.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Could not %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrUnauthenticated:
		return e.Kind == KindUnauthenticated
	}
	return false
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
}

func statusError(op string, status int, message string) *Error {
	kind := KindRejected
	if status == http.StatusUnauthorized {
		kind = KindUnauthenticated
	}
	return &Error{Kind: kind, Op: op, Message: message, Status: status}
}
