package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// the row is still referenced by another row (foreign key)
	ErrReferenced = errors.New("referenced")
	ErrDuplicate  = errors.New("duplicate")
	// the write would push a bounded column past its limit
	ErrLimitExceeded = errors.New("limit exceeded")
)
