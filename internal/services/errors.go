package services

import "fmt"

// Service errors form a closed taxonomy; handlers map each type to a
// status code and error code once, in handleServiceError. Errors from
// external collaborators are converted into one of these at the
// boundary where they are first observed.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// ImageValidationError carries the first failed image check. Reason is
// one of INVALID_FORMAT, TOO_MANY_IMAGES, DISALLOWED_SOURCE,
// INSECURE_PROTOCOL.
type ImageValidationError struct {
	Reason  string
	Message string
}

func (e *ImageValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

type TimeoutError struct{ Message string }

func (e *TimeoutError) Error() string { return e.Message }

// AIAPIError covers non-retryable 4xx responses from the model
// provider that are neither rate limiting nor timeout.
type AIAPIError struct {
	Message    string
	StatusCode int
}

func (e *AIAPIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// UnprocessableError marks a value that passed input validation but
// still violates a storage-level constraint (422 rather than 400).
type UnprocessableError struct{ Message string }

func (e *UnprocessableError) Error() string { return e.Message }
