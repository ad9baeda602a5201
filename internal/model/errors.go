package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrPieceUnavailable = errors.New("piece is not available")
	ErrNoPieceInHand    = errors.New("player has no piece to place")
	ErrInvalidCell      = errors.New("cell is occupied or out of bounds")
	ErrInvalidPiece     = errors.New("invalid piece code")

	// Turn errors
	ErrWrongPhase        = errors.New("action not allowed in this phase")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrClaimWindowClosed = errors.New("claim window has closed")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidConfig = errors.New("invalid game configuration")
)
