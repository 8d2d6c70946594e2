// Package apperrors defines the error kinds surfaced by the catalog, order and
// admin services. Controllers translate them to HTTP status codes with HTTPStatus.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindPersistence       Kind = "persistence"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnavailable       Kind = "unavailable"
)

// Error carries a kind, the failing operation and a message safe to show to callers.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func NotFound(op, what string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: what + " not found"}
}

func Unauthorized(op, message string) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: message}
}

func Forbidden(op, message string) *Error {
	return &Error{Kind: KindForbidden, Op: op, Message: message}
}

func Unavailable(op, message string) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Message: message}
}

// Persistence wraps a store failure. The message never includes the cause.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: "Something went wrong, please try again", Err: err}
}

// InvalidTransition reports a rejected status change. allowed lists the
// statuses reachable from from; none means from is terminal.
func InvalidTransition(from, to string, allowed ...string) *Error {
	message := fmt.Sprintf("order is %q and can no longer change status", from)
	if len(allowed) > 0 {
		message = fmt.Sprintf("cannot move order from %q to %q (allowed: %s)", from, to, strings.Join(allowed, ", "))
	}
	return &Error{
		Kind:    KindInvalidTransition,
		Op:      "order.UpdateStatus",
		Message: message,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindPersistence
// for anything unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong, please try again"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidTransition:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
