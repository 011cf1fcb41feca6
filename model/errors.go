package model

import "fmt"

// Standard error codes.
const (
	ErrBadRequest      = "BAD_REQUEST"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrForbidden       = "FORBIDDEN"
	ErrNotFound        = "NOT_FOUND"
	ErrConflict        = "CONFLICT"
	ErrValidationError = "VALIDATION_ERROR"
	ErrUnprocessable   = "UNPROCESSABLE"
	ErrRateLimited     = "RATE_LIMITED"
	ErrInternalError   = "INTERNAL_ERROR"
)

// Exchange-rate error codes.
const (
	ErrRateUnavailable  = "RATE_UNAVAILABLE"
	ErrRateSourceStale  = "RATE_SOURCE_STALE"
	ErrUnsupportedUnit  = "UNSUPPORTED_UNIT"
	ErrExpressionSyntax = "EXPRESSION_SYNTAX"
)

// ErrorEnvelope is the standard error response envelope returned by the API.
// It implements the error interface.
type ErrorEnvelope struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
	TraceID string       `json:"trace_id"`
}

// Error implements the error interface.
func (e *ErrorEnvelope) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewBadRequestError returns a BAD_REQUEST error.
func NewBadRequestError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrBadRequest, Message: msg}
}

// NewUnauthorizedError returns an UNAUTHORIZED error.
func NewUnauthorizedError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrUnauthorized, Message: msg}
}

// NewForbiddenError returns a FORBIDDEN error.
func NewForbiddenError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrForbidden, Message: msg}
}

// NewNotFoundError returns a NOT_FOUND error.
func NewNotFoundError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrNotFound, Message: msg}
}

// NewConflictError returns a CONFLICT error.
func NewConflictError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrConflict, Message: msg}
}

// NewValidationError returns a VALIDATION_ERROR with field-level details.
func NewValidationError(details []FieldError) *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrValidationError,
		Message: "One or more inputs are invalid",
		Details: details,
	}
}

// NewUnprocessableError returns an UNPROCESSABLE error for requests that
// parse but cannot be computed, such as an expression dividing by zero.
func NewUnprocessableError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrUnprocessable, Message: msg}
}

// NewExpressionSyntaxError returns an EXPRESSION_SYNTAX error.
func NewExpressionSyntaxError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrExpressionSyntax, Message: msg}
}

// NewInternalError returns an INTERNAL_ERROR.
func NewInternalError() *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrInternalError,
		Message: "An unexpected error occurred",
	}
}

// NewRateUnavailableError returns a RATE_UNAVAILABLE error for currency
// pairs that have no live rate and no stale fallback.
func NewRateUnavailableError(base, quote string) *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrRateUnavailable,
		Message: fmt.Sprintf("No exchange rate available for %s/%s", base, quote),
	}
}

// NewUnsupportedUnitError returns an UNSUPPORTED_UNIT error.
func NewUnsupportedUnitError(code string) *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrUnsupportedUnit,
		Message: fmt.Sprintf("Currency %q is not supported", code),
	}
}

// NewRateLimitedError returns a RATE_LIMITED error.
func NewRateLimitedError() *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrRateLimited,
		Message: "Rate limit exceeded. Please try again later.",
	}
}
