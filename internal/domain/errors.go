package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrParcelNotFound   = errors.New("parcel not found")
	ErrAlreadyAssigned  = errors.New("parcel already assigned to a transport company")
	ErrIntegrity        = errors.New("integrity constraint violated")
	ErrConcurrency      = errors.New("concurrent modification, try again later")
	ErrUpstream         = errors.New("rate provider unavailable")
	ErrCacheUnavailable = errors.New("rate cache unavailable")
)

// ValidationError describes a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as one that will fail the same way on every retry.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether retrying the operation that produced err is pointless.
// Validation and integrity failures are always permanent.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var pe *permanentError
	return errors.As(err, &pe) || errors.Is(err, ErrValidation) || errors.Is(err, ErrIntegrity)
}
