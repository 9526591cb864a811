package repository

import "errors"

// Sentinel kinds for league store errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidLimit    = errors.New("invalid table limit")
	ErrDuplicateResult = errors.New("fixture already recorded")
)
