package models

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidTimeFormat = errors.New("invalid or missing time format")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrDuplicateTime     = errors.New("duplicate time(s) detected")
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrAlreadyExists     = errors.New("key or category already exists")
	ErrStoreUnavailable  = errors.New("document store unavailable")
	ErrCacheUnavailable  = errors.New("cache unavailable")
	ErrUnauthorized      = errors.New("invalid email or password")
	ErrOTPExpired        = errors.New("otp has expired")
)

// DuplicateTimeError reports which candidate times already exist in the
// target date group. The write that produced it changed nothing.
type DuplicateTimeError struct {
	Times []string
}

func (e *DuplicateTimeError) Error() string {
	return ErrDuplicateTime.Error() + ": " + strings.Join(e.Times, ", ")
}

func (e *DuplicateTimeError) Unwrap() error {
	return ErrDuplicateTime
}

// ErrNotMatched is returned by conditional store updates whose filter
// matched no document; callers re-read and decide.
var ErrNotMatched = errors.New("conditional update did not match")

// IsDomainError reports whether err is an expected outcome of a store call
// rather than a failure of the store itself.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotMatched, ErrNotFound, ErrInvalidID, ErrAlreadyExists,
		ErrDuplicateTime, ErrInvalidRequest,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
