package request

import (
	"time"

	"github.com/mcoot/quarto/internal/model"
)

// WinConfig toggles the shape families that can win
type WinConfig struct {
	Rows      bool `json:"rows"`
	Columns   bool `json:"columns"`
	Diagonals bool `json:"diagonals"`
	Squares2  bool `json:"squares_2x2"`
	Squares3  bool `json:"squares_3x3"`
	Corners   bool `json:"corners"`
}

// CreateGameRequest is the request body for creating a game. Omitted fields
// take their defaults.
type CreateGameRequest struct {
	Win                *WinConfig `json:"win,omitempty"`
	ClaimWindowSeconds int        `json:"claim_window_seconds,omitempty"`
	TimeBudgetMinutes  int        `json:"time_budget_minutes,omitempty"`
}

// Config converts the request into a game configuration. Durations longer
// than a day are rejected before conversion so they cannot overflow; the
// result still needs validating.
func (r CreateGameRequest) Config() (model.GameConfig, error) {
	cfg := model.DefaultGameConfig()
	if r.ClaimWindowSeconds > int(model.MaxConfigDuration/time.Second) ||
		r.TimeBudgetMinutes > int(model.MaxConfigDuration/time.Minute) {
		return cfg, model.ErrInvalidConfig
	}
	if r.Win != nil {
		cfg.Win = model.WinConfig{
			Rows:      r.Win.Rows,
			Columns:   r.Win.Columns,
			Diagonals: r.Win.Diagonals,
			Squares2:  r.Win.Squares2,
			Squares3:  r.Win.Squares3,
			Corners:   r.Win.Corners,
		}
	}
	if r.ClaimWindowSeconds != 0 {
		cfg.ClaimWindow = time.Duration(r.ClaimWindowSeconds) * time.Second
	}
	cfg.TimeBudget = time.Duration(r.TimeBudgetMinutes) * time.Minute
	return cfg, nil
}

// SelectRequest is the request body for selecting a piece for the opponent
type SelectRequest struct {
	Piece string `json:"piece"`
}

// PlaceRequest is the request body for placing the held piece
type PlaceRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ClaimRequest is the request body for calling quarto
type ClaimRequest struct {
	Player int `json:"player"`
}
