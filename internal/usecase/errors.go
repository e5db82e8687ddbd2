package usecase

import "fmt"

// NotFoundError covers entities that are absent or not owned by the caller.
// Ownership misses deliberately look identical to absence.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError is malformed caller input: missing fields, bad CSV headers,
// illegal status transitions.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// RateLimitedError means upstream throttling survived every retry.
type RateLimitedError struct {
	Message string
}

func (e *RateLimitedError) Error() string {
	return e.Message
}

func IsRateLimited(err error) bool {
	_, ok := err.(*RateLimitedError)
	return ok
}

// UpstreamError is any other external-dependency failure after retries, plus
// missing vendor credentials.
type UpstreamError struct {
	Service string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func IsUpstream(err error) bool {
	_, ok := err.(*UpstreamError)
	return ok
}
