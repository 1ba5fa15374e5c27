package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no nurse matches the lookup.
	ErrNotFound = errors.New("nurse not found")
	// ErrConflict is returned when a write would duplicate an email or username.
	ErrConflict = errors.New("nurse conflicts with an existing record")

	ErrEmailTaken    = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrUsernameTaken = fmt.Errorf("username already exists: %w", ErrConflict)
)
