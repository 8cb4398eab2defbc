package domain

import "fmt"

// Kind classifies an error so the HTTP layer can pick a status code without
// string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindState
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

// Error is the service-layer error type. Services return these and the HTTP
// error handler is the only place they are translated to status codes.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The cause is kept for logging but
// never leaks into a response body.
func Internal(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), cause: cause}
}

var (
	ErrInvalidCredentials = Unauthenticated("Invalid username or password")
	ErrAccountDeactivated = State("User account is deactivated")
)
