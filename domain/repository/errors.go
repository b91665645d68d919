package repository

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate entry")
	// ErrOverlap is raised by the booking exclusion constraint.
	ErrOverlap = errors.New("overlapping booking")
)
