// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups codes by how callers should react.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindQuery
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindQuery:
		return "query"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Code is a machine-readable failure reason.
type Code string

const (
	CodeInvalidDateOrder    Code = "INVALID_DATE_ORDER"
	CodeInvalidChoice       Code = "INVALID_CHOICE"
	CodeInvalidField        Code = "INVALID_FIELD"
	CodeCardinalityExceeded Code = "CARDINALITY_EXCEEDED"

	CodeEmptyQueryParams       Code = "EMPTY_QUERY_PARAMS"
	CodeUnrecognizedQueryParam Code = "UNRECOGNIZED_QUERY_PARAM"
	CodeInvalidQueryValue      Code = "INVALID_QUERY_VALUE"
	CodeInvalidPageToken       Code = "INVALID_PAGE_TOKEN"

	CodeForbidden       Code = "FORBIDDEN"
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	CodeNotFound Code = "NOT_FOUND"

	CodeInternal Code = "INTERNAL"
)

var codeKinds = map[Code]Kind{
	CodeInvalidDateOrder:       KindValidation,
	CodeInvalidChoice:          KindValidation,
	CodeInvalidField:           KindValidation,
	CodeCardinalityExceeded:    KindValidation,
	CodeEmptyQueryParams:       KindQuery,
	CodeUnrecognizedQueryParam: KindQuery,
	CodeInvalidQueryValue:      KindQuery,
	CodeInvalidPageToken:       KindQuery,
	CodeForbidden:              KindPermission,
	CodeUnauthenticated:        KindPermission,
	CodeNotFound:               KindNotFound,
	CodeInternal:               KindInternal,
}

// Kind returns the kind the code belongs to.
func (c Code) Kind() Kind {
	return codeKinds[c]
}

// Error is a failure scoped to a single operation.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Kind reports the kind of the error's code.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidDateOrder       = &Error{Code: CodeInvalidDateOrder, Message: "begin_date is after end_date"}
	ErrInvalidChoice          = &Error{Code: CodeInvalidChoice, Message: "invalid choice"}
	ErrInvalidField           = &Error{Code: CodeInvalidField, Message: "invalid field"}
	ErrCardinalityExceeded    = &Error{Code: CodeCardinalityExceeded, Message: "cardinality exceeded"}
	ErrEmptyQueryParams       = &Error{Code: CodeEmptyQueryParams, Message: "no query params"}
	ErrUnrecognizedQueryParam = &Error{Code: CodeUnrecognizedQueryParam, Message: "unrecognized query param"}
	ErrInvalidQueryValue      = &Error{Code: CodeInvalidQueryValue, Message: "invalid query value"}
	ErrInvalidPageToken       = &Error{Code: CodeInvalidPageToken, Message: "invalid page token"}
	ErrForbidden              = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrUnauthenticated        = &Error{Code: CodeUnauthenticated, Message: "unauthenticated"}
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
)

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the code from err, or CodeInternal when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// KindOf extracts the kind from err.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	code := CodeOf(err)
	switch code {
	case CodeCardinalityExceeded:
		return http.StatusConflict
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	}
	switch code.Kind() {
	case KindValidation, KindQuery:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
