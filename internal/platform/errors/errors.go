// Package errors is the project error type; import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for status mapping and the wire
type ErrorCode uint16

// Codes are part of the wire; append only
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeNotImplemented
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeNotImplemented:  http.StatusNotImplemented,
}

// HTTPStatusCode maps a code to a status; anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the bare not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a client facing message, a code and optionally a field and a cause
type Error struct {
	cause error
	msg   string
	code  ErrorCode
	field string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code is the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// Wire is what clients see; the cause stays server side
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// ToWire drops the cause
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error; foreign errors surface their text as unknown
func WireFrom(err error) Wire {
	switch e, ok := As(err); {
	case err == nil:
		return Wire{}
	case ok:
		return e.ToWire()
	default:
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
}

// As finds an *Error anywhere in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// Root is the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// CodeOf is the code of the first *Error in the chain, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err classifies as code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy naming field; foreign errors are returned as is
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New builds an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap attaches a code and message to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{cause: cause, code: code, msg: msg}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// NotFoundf is a 404
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf is a 422
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// NotImplementedf is a 501, used when a backend is not configured
func NotImplementedf(format string, a ...any) error {
	return Newf(ErrorCodeNotImplemented, format, a...)
}

// JSONErrf is a 400 for unreadable bodies
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf is a 500 for recovered panics
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }
