package entity

import "errors"

// Sentinel errors for domain layer operations.
var (
	// ErrItemAlreadyExists indicates that a create collided with an existing
	// item of the same id. The harvest pipeline treats this as a failed
	// create, not as success.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrEmptyCandidate indicates a search result with no title, content, or
	// URL; such results carry no identity and cannot be fingerprinted.
	ErrEmptyCandidate = errors.New("candidate has no title, content, or url")

	// ErrSettingsNotFound indicates that no settings document exists for a user.
	ErrSettingsNotFound = errors.New("user settings not found")
)
