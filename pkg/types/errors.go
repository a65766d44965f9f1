package types

import "errors"

// Standard errors returned by the storage backends and the lifecycle engine.
// Not-found and validation failures are normal outcomes, not crashes; callers
// match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidField      = errors.New("field is not updatable")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyTitle        = errors.New("title must not be empty")
	ErrUnknownAuthor     = errors.New("unknown author")
	ErrEmptyCategory     = errors.New("category name must not be empty")
	ErrDuplicateCategory = errors.New("category already exists")
)
