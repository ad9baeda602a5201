package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/quarto/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidPiece      = "INVALID_PIECE"
	CodeInvalidPlayer     = "INVALID_PLAYER"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeInvalidCell       = "INVALID_CELL"
	CodePieceUnavailable  = "PIECE_UNAVAILABLE"
	CodeNoPieceInHand     = "NO_PIECE_IN_HAND"
	CodeWrongPhase        = "WRONG_PHASE"
	CodeNotYourTurn       = "NOT_YOUR_TURN"
	CodeClaimWindowClosed = "CLAIM_WINDOW_CLOSED"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrInvalidPiece):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPiece, "Piece code must be four letters: W/N, S/R, L/D, F/H"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player must be 1 or 2"}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfig, "Invalid game configuration"}}
	case errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusConflict, APIError{CodeInvalidCell, "Cell is occupied or off the board"}}
	case errors.Is(err, model.ErrPieceUnavailable):
		return &httpError{http.StatusConflict, APIError{CodePieceUnavailable, "Piece is not available"}}
	case errors.Is(err, model.ErrNoPieceInHand):
		return &httpError{http.StatusConflict, APIError{CodeNoPieceInHand, "No piece to place"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Action not allowed in the current phase"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrClaimWindowClosed):
		return &httpError{http.StatusConflict, APIError{CodeClaimWindowClosed, "Claim window has closed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
