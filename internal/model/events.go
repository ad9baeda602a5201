package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted       EventType = "game_started"
	EventPieceSelected     EventType = "piece_selected"
	EventPiecePlaced       EventType = "piece_placed"
	EventPhaseChanged      EventType = "phase_changed"
	EventClaimWindowOpened EventType = "claim_window_opened"
	EventClaimFailed       EventType = "claim_failed"
	EventGameEnded         EventType = "game_ended"
	EventGameDeleted       EventType = "game_deleted"
	EventActionRejected    EventType = "action_rejected"
)

// Event is a state-change notification emitted by the game controller
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Player    Player // The player who triggered or is affected, 0 if none
	Phase     Phase  // Phase after the change
	Payload   any    // Type-specific data
}

// GameStartedPayload contains data for game started and reset events
type GameStartedPayload struct {
	Config    GameConfig
	Available []Piece
}

// PieceSelectedPayload contains data for piece selected events
type PieceSelectedPayload struct {
	Piece     Piece
	Recipient Player
}

// PiecePlacedPayload contains data for piece placed events
type PiecePlacedPayload struct {
	Piece    Piece
	Position Position
}

// ClaimFailedPayload contains data for a quarto call that found no line
type ClaimFailedPayload struct {
	Claimant Player
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	Outcome Outcome
}

// ActionRejectedPayload contains data for rejected actions
type ActionRejectedPayload struct {
	Action string
	Reason string
}
