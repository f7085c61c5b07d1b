package services

import "errors"

// Errors shared by the services and mapped to HTTP status codes by the handlers.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrMatchNotFound      = errors.New("match not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrTournamentMismatch = errors.New("category does not belong to the tournament")

	ErrMatchMissingPairs     = errors.New("both pairs must be known before a result is recorded")
	ErrMatchAlreadyCompleted = errors.New("match already has a different winner")
	ErrNoQualifiedPairs      = errors.New("no pairs qualified for the knockout stage")
)
