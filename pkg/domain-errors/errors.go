// Package domainerrors defines the service's error taxonomy. Services return
// these so the transport layer can translate them into HTTP responses without
// string matching, and so batch processing can distinguish policy denials
// from infrastructure faults.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure. Codes are part of the API contract and
// appear verbatim in error response bodies.
type Code string

const (
	// CodeBadRequest covers malformed request envelopes (unparseable JSON,
	// wrong content type).
	CodeBadRequest Code = "bad_request"

	// CodeValidation covers well-formed requests with invalid content, such
	// as a missing threat_id or an unserializable threat record.
	CodeValidation Code = "validation_failed"

	// CodeConfirmationRequired is the policy denial: a destructive
	// recommendation was produced and the caller did not supply prior
	// confirmation. The denial is always audit-logged before this is raised.
	CodeConfirmationRequired Code = "confirmation_required"

	// CodeGenerationFailed means the generation backend was unreachable or
	// returned a malformed response.
	CodeGenerationFailed Code = "generation_failed"

	// CodeGenerationTimeout means the generation backend did not answer
	// within the configured deadline.
	CodeGenerationTimeout Code = "generation_timeout"

	// CodeAuditUnavailable means the audit log could not be written. The
	// decision attempt fails as a whole; an unlogged decision is never
	// reported as approved.
	CodeAuditUnavailable Code = "audit_unavailable"

	// CodeInternal is the fallback for unexpected faults.
	CodeInternal Code = "internal_error"
)

// Error carries a code plus an operator-facing message. It optionally wraps
// an underlying cause for errors.Is/As chains.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a domain error around an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the domain error code from err, or CodeInternal when err
// carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the operator-facing message from err, or an empty
// string when err is not a domain error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps an error code to its HTTP status. Unknown codes map to
// 500 so a missed mapping fails safe rather than leaking a 200.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeConfirmationRequired:
		return http.StatusConflict
	case CodeGenerationFailed:
		return http.StatusBadGateway
	case CodeGenerationTimeout:
		return http.StatusGatewayTimeout
	case CodeAuditUnavailable, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
