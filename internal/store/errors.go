package store

import "errors"

// ErrNotFound is returned when a row does not exist or is outside the
// actor's scope.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint is violated.
var ErrConflict = errors.New("conflict")

// ErrDuplicateCompany is returned when a lead write collides with the
// case-insensitive company uniqueness index.
var ErrDuplicateCompany = errors.New("duplicate company")

// ErrForbidden is returned when the actor may not modify a row.
var ErrForbidden = errors.New("forbidden")
