package services

import "errors"

// Shared service-level errors, mapped onto HTTP statuses by the handlers.
// Engine rule violations (illegal draw, round incomplete, ...) surface as the
// engine package's sentinels and are mapped there as well.
var (
	ErrTournamentNotFound = errors.New("tournament not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrInvalidFormat           = errors.New("invalid tournament format")
	ErrNotEnoughContestants    = errors.New("at least 2 contestants are required")
	ErrDuplicateContestantName = errors.New("contestant names must be unique")
	ErrContestantNameRequired  = errors.New("contestant name is required")
	ErrInvalidPointScheme      = errors.New("point scheme values must not be negative")
	ErrTournamentNameConflict  = errors.New("tournament already exists")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid organizer credentials")
)
