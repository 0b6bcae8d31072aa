package model

import "errors"

// Every refusal the engine can issue is one of the sentinels below, so
// callers can branch with errors.Is. Wrapped variants carry extra detail but
// always match their sentinel.
var (
	// Registration.
	ErrAlreadyRegistered = errors.New("player already registered")
	ErrGameFull          = errors.New("game is full")

	// Board initialization.
	ErrNotAuthorized = errors.New("not authorized to initialize the board")
	ErrAlreadyActive = errors.New("game is already active")

	// Moves, in the order the pipeline checks them.
	ErrGameNotActive   = errors.New("game is not active")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrTurnViolation   = errors.New("not your turn")
	ErrDeadPiece       = errors.New("piece is captured")
	ErrWrongColorPiece = errors.New("piece belongs to the opponent")
	ErrClaimMismatch   = errors.New("claimed tokens do not match the board")
	ErrIllegalMove     = errors.New("illegal move")
)
