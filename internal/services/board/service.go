package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/quarto/internal/dependencies/random"
	"github.com/mcoot/quarto/internal/model"
)

// Service creates and validates boards
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new BoardService
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger.With(slog.String("component", "board")),
	}
}

// NewBoard creates an empty board with a freshly shuffled piece pool
func (s *Service) NewBoard() *model.Board {
	return model.NewBoard(s.ShuffledPieces())
}

// ResetBoard clears the board and reshuffles all 16 pieces into the pool
func (s *Service) ResetBoard(board *model.Board) {
	board.Reset(s.ShuffledPieces())
}

// ShuffledPieces returns the full piece set in random order
func (s *Service) ShuffledPieces() []model.Piece {
	pieces := model.AllPieces()
	random.Shuffle(s.random, pieces)
	return pieces
}

// ValidatePlacement checks that the player can put their held piece at pos
func (s *Service) ValidatePlacement(board *model.Board, player model.Player, pos model.Position) error {
	if !player.Valid() {
		return model.ErrInvalidPlayer
	}
	if _, ok := board.Hand(player); !ok {
		return model.ErrNoPieceInHand
	}
	if !board.IsValidSpot(pos) {
		return model.ErrInvalidCell
	}
	return nil
}

// VerifyInventory checks that the available pool, both hands and the grid
// together hold each of the 16 pieces exactly once
func (s *Service) VerifyInventory(board *model.Board) error {
	seen := make(map[model.Piece]int, model.PieceCount)
	for _, p := range board.Available {
		seen[p]++
	}
	for _, h := range board.Hands {
		if h != nil {
			seen[*h]++
		}
	}
	for _, p := range board.PlacedPieces() {
		seen[p]++
	}

	for _, p := range model.AllPieces() {
		if seen[p] != 1 {
			s.logger.Error("piece inventory mismatch",
				slog.String("piece", p.Code()),
				slog.Int("count", seen[p]),
			)
			return fmt.Errorf("piece %s held %d times", p.Code(), seen[p])
		}
	}
	if len(seen) != model.PieceCount {
		return fmt.Errorf("inventory holds %d distinct pieces", len(seen))
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBoard() *model.Board
	ResetBoard(board *model.Board)
	ShuffledPieces() []model.Piece
	ValidatePlacement(board *model.Board, player model.Player, pos model.Position) error
	VerifyInventory(board *model.Board) error
}

var _ ServiceInterface = (*Service)(nil)
