package membership

import "errors"

var (
	// ErrMatchNotFound is returned when the referenced match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrMatchFull is returned when a non-member tries to join a match at capacity.
	ErrMatchFull = errors.New("match is full")
)
