package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyFilter guards update/delete calls that would touch every row.
	ErrEmptyFilter = errors.New("filter must not be empty")
	// ErrNothingToUpdate is returned when no column was set.
	ErrNothingToUpdate = errors.New("no fields to update")
)
