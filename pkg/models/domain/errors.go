package domain

import "fmt"

// ValidationError marks bad caller input; surfaced as a 4xx by the API.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError marks a lookup for an unknown review.
type NotFoundError struct {
	ReviewID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("review %s not found", e.ReviewID)
}

// DownstreamInvocationError marks a rejected queue or pipeline dispatch.
// The review is recorded FAILED and the job reported for redelivery.
type DownstreamInvocationError struct {
	Target string
	Reason string
}

func (e *DownstreamInvocationError) Error() string {
	return fmt.Sprintf("%s dispatch rejected: %s", e.Target, e.Reason)
}

// PersistenceError wraps a store read/write failure. It is logged and
// re-raised to the immediate caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
