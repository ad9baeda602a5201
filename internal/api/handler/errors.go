package handler

import (
	"net/http"

	"github.com/mcoot/quarto/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodeInvalidPiece      = apierr.CodeInvalidPiece
	CodeInvalidPlayer     = apierr.CodeInvalidPlayer
	CodeInvalidConfig     = apierr.CodeInvalidConfig
	CodeInvalidCell       = apierr.CodeInvalidCell
	CodePieceUnavailable  = apierr.CodePieceUnavailable
	CodeNoPieceInHand     = apierr.CodeNoPieceInHand
	CodeWrongPhase        = apierr.CodeWrongPhase
	CodeNotYourTurn       = apierr.CodeNotYourTurn
	CodeClaimWindowClosed = apierr.CodeClaimWindowClosed
	CodeGameNotFound      = apierr.CodeGameNotFound
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
