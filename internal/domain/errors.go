package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a trivia session has not been opened.
	ErrSessionNotFound = errors.New("trivia session not found")
	// ErrCatalogEmpty indicates the question catalog could not provide any question.
	ErrCatalogEmpty = errors.New("question catalog is empty")
	// ErrInvalidQuestion indicates a catalog entry is malformed (options, correct index, category or difficulty).
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrUnknownCategory is returned when a player picks a category the catalog does not have.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownDifficulty is returned for difficulties outside easy/medium/hard.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrIllegalTransition is returned when an action does not apply to the current phase.
	ErrIllegalTransition = errors.New("action not allowed in current phase")
	// ErrNoExitPending is returned when confirming or cancelling an exit that was never requested.
	ErrNoExitPending = errors.New("no exit request pending")
	// ErrExitNotAllowed is returned when exit confirmation is requested outside a round.
	ErrExitNotAllowed = errors.New("exit confirmation not available in current phase")
)
