package errorz

import "errors"

// Domain failure kinds. Services return these wrapped with context so callers
// can branch with errors.Is instead of decoding sentinel values.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStorage          = errors.New("storage failure")
)
