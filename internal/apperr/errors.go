// Package apperr defines the error taxonomy shared by the storefront API and the back-office services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies an error for propagation to callers.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindRemoteService
	KindPaymentIncomplete
	KindMissingOrderReference
	KindPrecondition
	KindUnauthorized
)

// Error is a classified error. Message is safe to show to users; Err carries the cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind and message, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

var (
	ErrPaymentIncomplete     = &Error{Kind: KindPaymentIncomplete, Message: "payment not completed"}
	ErrMissingOrderReference = &Error{Kind: KindMissingOrderReference, Message: "order reference missing from payment session"}
	ErrOrderNotFound         = &Error{Kind: KindNotFound, Message: "order not found"}
	ErrDriverNotFound        = &Error{Kind: KindNotFound, Message: "driver not found"}
	ErrInvalidCredentials    = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
)

// Validation reports a missing or malformed input field.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown entity.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Precondition reports a request that is valid but not allowed in the current state.
func Precondition(format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

// Remote wraps a failed call to the database, payment gateway or another dependency.
// The user-facing message stays generic; op and err are kept for logs.
func Remote(op string, err error) error {
	return &Error{Kind: KindRemoteService, Message: "service temporarily unavailable", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the user-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// HTTPStatus maps err to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindPaymentIncomplete, KindMissingOrderReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPrecondition:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRemoteService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps err to a gRPC status code.
func GRPCCode(err error) codes.Code {
	switch KindOf(err) {
	case KindValidation:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindPrecondition, KindPaymentIncomplete, KindMissingOrderReference:
		return codes.FailedPrecondition
	case KindUnauthorized:
		return codes.Unauthenticated
	case KindRemoteService:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// GRPCStatus converts err into a gRPC status error carrying the user-facing message.
func GRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(GRPCCode(err), Message(err))
}
