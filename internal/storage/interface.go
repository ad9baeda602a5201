package storage

import (
	"context"

	"github.com/mcoot/quarto/internal/model"
)

// Storage defines the interface for holding live games. Implementations
// return model.ErrGameNotFound for unknown IDs and list games oldest first.
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]*model.Game, error)
}
