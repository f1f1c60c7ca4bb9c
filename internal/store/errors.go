package store

import "errors"

var (
	// ErrEmptyName is returned by the upserts when the name is blank after trimming.
	ErrEmptyName = errors.New("name must be a non-empty string")

	// ErrEmptyText is returned by joke writes when the text is blank after trimming.
	ErrEmptyText = errors.New("text must be a non-empty string")

	// ErrNotFound is returned when a joke id does not reference an existing row.
	ErrNotFound = errors.New("joke not found")

	// ErrMissingReference is returned by CreateJoke when the user or theme
	// id does not reference an existing row.
	ErrMissingReference = errors.New("joke references a nonexistent user or theme")
)
