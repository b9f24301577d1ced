package game

import "errors"

// Game errors. They explain why an input was inert; the session never
// surfaces them to callers.
var (
	ErrInvalidRules      = errors.New("invalid rules")
	ErrNotInitialized    = errors.New("game field not initialized")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNeutralCell       = errors.New("neutral cell cannot act")
	ErrNoUnits           = errors.New("cell has no units")
	ErrSelectionActive   = errors.New("a selection is active")
	ErrMaxLevel          = errors.New("building already at max level")
	ErrInsufficientUnits = errors.New("insufficient units")
)
