package errors

// ErrorCode represents a machine-readable error identifier for client error handling.
type ErrorCode string

// Request errors
const (
	ErrCodeRouteNotFound    ErrorCode = "route_not_found"
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeRateLimited      ErrorCode = "rate_limited"
)

// Internal/System errors
const (
	ErrCodeInternalError ErrorCode = "internal_error"
)

// IsRetryable returns whether an error code represents a retryable error.
// Rate limiting is the only transient condition this service produces.
func (e ErrorCode) IsRetryable() bool {
	switch e {
	case ErrCodeRateLimited:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeRouteNotFound:
		return 404
	case ErrCodeMethodNotAllowed:
		return 405
	case ErrCodeRateLimited:
		return 429
	default:
		return 500
	}
}
