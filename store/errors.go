package store

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (e.g. a form slug already in use).
var ErrDuplicate = errors.New("resource already exists")
