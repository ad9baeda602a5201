package response

import (
	"time"

	"github.com/mcoot/quarto/internal/host"
	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/services/timer"
)

// Piece represents a piece in API responses
type Piece struct {
	Code  string `json:"code"`
	Width string `json:"width"`
	Shape string `json:"shape"`
	Color string `json:"color"`
	Fill  string `json:"fill"`
}

var (
	widthNames = [2]string{"wide", "narrow"}
	shapeNames = [2]string{"square", "round"}
	colorNames = [2]string{"light", "dark"}
	fillNames  = [2]string{"solid", "hollow"}
)

// PieceFromModel converts a model.Piece
func PieceFromModel(p model.Piece) Piece {
	return Piece{
		Code:  p.Code(),
		Width: widthNames[p.Width],
		Shape: shapeNames[p.Shape],
		Color: colorNames[p.Color],
		Fill:  fillNames[p.Fill],
	}
}

func optionalPiece(p model.Piece, ok bool) *Piece {
	if !ok {
		return nil
	}
	resp := PieceFromModel(p)
	return &resp
}

// Position represents a board cell
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionFromModel converts a model.Position
func PositionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

// Victory describes a winning line
type Victory struct {
	Attribute   string     `json:"attribute"`
	Family      string     `json:"family"`
	Index       *int       `json:"index,omitempty"`
	Diagonal    string     `json:"diagonal,omitempty"`
	Corner      *Position  `json:"corner,omitempty"`
	Cells       []Position `json:"cells"`
	Description string     `json:"description"`
}

// VictoryFromModel converts a model.VictoryResult, returning nil for no win
func VictoryFromModel(v model.VictoryResult) *Victory {
	if !v.IsWin() {
		return nil
	}

	cells := v.Cells()
	resp := &Victory{
		Attribute:   string(v.Attribute),
		Family:      string(v.Family),
		Cells:       make([]Position, len(cells)),
		Description: v.Describe(),
	}
	for i, c := range cells {
		resp.Cells[i] = PositionFromModel(c)
	}

	switch v.Family {
	case model.FamilyRow, model.FamilyColumn:
		index := v.Index
		resp.Index = &index
	case model.FamilyDiagonal:
		resp.Diagonal = string(v.Diagonal)
	default:
		corner := PositionFromModel(v.Corner)
		resp.Corner = &corner
	}
	return resp
}

// Outcome describes how a game ended
type Outcome struct {
	Kind    string   `json:"kind"`
	Winner  int      `json:"winner,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Victory *Victory `json:"victory,omitempty"`
}

// OutcomeFromModel converts a model.Outcome
func OutcomeFromModel(o model.Outcome) Outcome {
	return Outcome{
		Kind:    string(o.Kind),
		Winner:  int(o.Winner),
		Reason:  string(o.Reason),
		Victory: VictoryFromModel(o.Victory),
	}
}

// Phase represents the turn state
type Phase struct {
	Kind     string     `json:"kind"`
	Player   int        `json:"player,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Outcome  *Outcome   `json:"outcome,omitempty"`
}

// PhaseFromModel converts a model.Phase
func PhaseFromModel(p model.Phase) Phase {
	resp := Phase{
		Kind:   string(p.Kind),
		Player: int(p.Player),
	}
	if p.Kind == model.PhaseAwaitingClaim {
		deadline := p.Deadline
		resp.Deadline = &deadline
	}
	if p.Outcome != nil {
		outcome := OutcomeFromModel(*p.Outcome)
		resp.Outcome = &outcome
	}
	return resp
}

// WinConfig represents the enabled shape families
type WinConfig struct {
	Rows      bool `json:"rows"`
	Columns   bool `json:"columns"`
	Diagonals bool `json:"diagonals"`
	Squares2  bool `json:"squares_2x2"`
	Squares3  bool `json:"squares_3x3"`
	Corners   bool `json:"corners"`
}

// Config represents a game configuration
type Config struct {
	Win                WinConfig `json:"win"`
	ClaimWindowSeconds float64   `json:"claim_window_seconds"`
	TimeBudgetMinutes  int       `json:"time_budget_minutes"`
}

// ConfigFromModel converts a model.GameConfig
func ConfigFromModel(c model.GameConfig) Config {
	return Config{
		Win: WinConfig{
			Rows:      c.Win.Rows,
			Columns:   c.Win.Columns,
			Diagonals: c.Win.Diagonals,
			Squares2:  c.Win.Squares2,
			Squares3:  c.Win.Squares3,
			Corners:   c.Win.Corners,
		},
		ClaimWindowSeconds: c.ClaimWindow.Seconds(),
		TimeBudgetMinutes:  int(c.TimeBudget / time.Minute),
	}
}

// Clock represents the chess clock
type Clock struct {
	Active           int       `json:"active,omitempty"`
	Running          bool      `json:"running"`
	Remaining        [2]string `json:"remaining"`
	RemainingSeconds [2]int    `json:"remaining_seconds"`
}

// ClockFromState converts a timer.ClockState, returning nil when the game
// has no chess clock
func ClockFromState(c timer.ClockState) *Clock {
	if !c.Enabled {
		return nil
	}
	return &Clock{
		Active:  int(c.Active),
		Running: c.Running,
		Remaining: [2]string{
			timer.FormatRemaining(c.Remaining[0]),
			timer.FormatRemaining(c.Remaining[1]),
		},
		RemainingSeconds: [2]int{
			int(c.Remaining[0] / time.Second),
			int(c.Remaining[1] / time.Second),
		},
	}
}

// Hands holds the piece each player is waiting to place
type Hands struct {
	Player1 *Piece `json:"player1"`
	Player2 *Piece `json:"player2"`
}

// Game represents the full game state
type Game struct {
	ID           string     `json:"id"`
	Phase        Phase      `json:"phase"`
	ActivePlayer int        `json:"active_player,omitempty"`
	Board        [][]*Piece `json:"board"`
	Available    []Piece    `json:"available"`
	Hands        Hands      `json:"hands"`
	Config       Config     `json:"config"`
	Clock        *Clock     `json:"clock,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// GameFromSnapshot converts a host snapshot
func GameFromSnapshot(s host.Snapshot) Game {
	g := s.Game

	board := make([][]*Piece, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		board[row] = make([]*Piece, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			board[row][col] = optionalPiece(g.Board.Piece(model.Position{Row: row, Col: col}))
		}
	}

	available := make([]Piece, len(g.Board.Available))
	for i, p := range g.Board.Available {
		available[i] = PieceFromModel(p)
	}

	return Game{
		ID:           string(g.ID),
		Phase:        PhaseFromModel(g.Phase),
		ActivePlayer: int(g.ActivePlayer()),
		Board:        board,
		Available:    available,
		Hands: Hands{
			Player1: optionalPiece(g.Board.Hand(model.Player1)),
			Player2: optionalPiece(g.Board.Hand(model.Player2)),
		},
		Config:    ConfigFromModel(g.Config),
		Clock:     ClockFromState(s.Clock),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []Game `json:"games"`
}

// ClaimResponse is the response after calling quarto
type ClaimResponse struct {
	Win     bool     `json:"win"`
	Victory *Victory `json:"victory,omitempty"`
	Game    Game     `json:"game"`
}

// Event is a game event as streamed to clients
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    string    `json:"game_id"`
	Player    int       `json:"player,omitempty"`
	Phase     Phase     `json:"phase"`
	Data      any       `json:"data,omitempty"`
}

// EventFromModel converts a model.Event, translating known payloads
func EventFromModel(e model.Event) Event {
	resp := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		GameID:    string(e.GameID),
		Player:    int(e.Player),
		Phase:     PhaseFromModel(e.Phase),
	}

	switch p := e.Payload.(type) {
	case model.GameStartedPayload:
		available := make([]Piece, len(p.Available))
		for i, piece := range p.Available {
			available[i] = PieceFromModel(piece)
		}
		resp.Data = map[string]any{
			"config":    ConfigFromModel(p.Config),
			"available": available,
		}
	case model.PieceSelectedPayload:
		resp.Data = map[string]any{
			"piece":     PieceFromModel(p.Piece),
			"recipient": int(p.Recipient),
		}
	case model.PiecePlacedPayload:
		resp.Data = map[string]any{
			"piece":    PieceFromModel(p.Piece),
			"position": PositionFromModel(p.Position),
		}
	case model.ClaimFailedPayload:
		resp.Data = map[string]any{"claimant": int(p.Claimant)}
	case model.GameEndedPayload:
		resp.Data = map[string]any{"outcome": OutcomeFromModel(p.Outcome)}
	case model.ActionRejectedPayload:
		resp.Data = map[string]any{"action": p.Action, "reason": p.Reason}
	}
	return resp
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
