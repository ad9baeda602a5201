package host

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/services/game"
	"github.com/mcoot/quarto/internal/services/timer"
)

// ClockSource reports chess clock state for a game
type ClockSource interface {
	Clock(gameID model.GameID) (timer.ClockState, bool)
}

// Snapshot is a copy of a game's state that is safe to read after the host
// lock is released
type Snapshot struct {
	Game  *model.Game
	Clock timer.ClockState
}

// Host serializes every call into the game controller. Presentation layers
// (HTTP, terminal) and the timer scheduler all go through it.
type Host struct {
	mu         sync.Mutex
	controller game.ControllerInterface
	clocks     ClockSource
	logger     *slog.Logger
}

// New creates a new Host
func New(controller game.ControllerInterface, logger *slog.Logger) *Host {
	return &Host{
		controller: controller,
		logger:     logger.With(slog.String("component", "host")),
	}
}

// SetClockSource attaches the source used to fill Snapshot.Clock
func (h *Host) SetClockSource(clocks ClockSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clocks = clocks
}

// CreateGame configures and starts a new game
func (h *Host) CreateGame(ctx context.Context, cfg model.GameConfig) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, err := h.controller.CreateGame(ctx, cfg)
	if err != nil {
		return Snapshot{}, err
	}
	return h.snapshot(g), nil
}

// Game returns a snapshot of a game
func (h *Host) Game(ctx context.Context, gameID model.GameID) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, err := h.controller.GetGame(ctx, gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return h.snapshot(g), nil
}

// Games returns snapshots of every game, oldest first
func (h *Host) Games(ctx context.Context) ([]Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	games, err := h.controller.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Snapshot, len(games))
	for i, g := range games {
		result[i] = h.snapshot(g)
	}
	return result, nil
}

// SelectPiece hands a piece to the opponent of the selecting player
func (h *Host) SelectPiece(ctx context.Context, gameID model.GameID, piece model.Piece) (Snapshot, error) {
	return h.apply(ctx, gameID, func() error {
		return h.controller.SelectPiece(ctx, gameID, piece)
	})
}

// PlacePiece places the active player's held piece
func (h *Host) PlacePiece(ctx context.Context, gameID model.GameID, pos model.Position) (Snapshot, error) {
	return h.apply(ctx, gameID, func() error {
		return h.controller.PlacePiece(ctx, gameID, pos)
	})
}

// ClaimWin evaluates a quarto call by player
func (h *Host) ClaimWin(ctx context.Context, gameID model.GameID, player model.Player) (model.VictoryResult, Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.controller.ClaimWin(ctx, gameID, player)
	snap, getErr := h.current(ctx, gameID)
	if err != nil {
		return result, snap, err
	}
	return result, snap, getErr
}

// Reset starts the game over with a fresh board
func (h *Host) Reset(ctx context.Context, gameID model.GameID) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, err := h.controller.ResetGame(ctx, gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return h.snapshot(g), nil
}

// Delete removes a game
func (h *Host) Delete(ctx context.Context, gameID model.GameID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.controller.DeleteGame(ctx, gameID)
}

// ExpireClaimWindow delivers a claim deadline
func (h *Host) ExpireClaimWindow(ctx context.Context, gameID model.GameID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.controller.ExpireClaimWindow(ctx, gameID)
}

// TimeOut delivers an exhausted chess clock
func (h *Host) TimeOut(ctx context.Context, gameID model.GameID, player model.Player) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.controller.TimeOut(ctx, gameID, player)
}

var _ timer.Driver = (*Host)(nil)

// apply runs a command and returns the resulting state. A rejected command
// still returns the unchanged state alongside the error.
func (h *Host) apply(ctx context.Context, gameID model.GameID, command func() error) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := command()
	snap, getErr := h.current(ctx, gameID)
	if err != nil {
		return snap, err
	}
	return snap, getErr
}

func (h *Host) current(ctx context.Context, gameID model.GameID) (Snapshot, error) {
	g, err := h.controller.GetGame(ctx, gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return h.snapshot(g), nil
}

func (h *Host) snapshot(g *model.Game) Snapshot {
	copied := *g
	copied.Board = g.Board.Clone()
	if g.Phase.Outcome != nil {
		outcome := *g.Phase.Outcome
		copied.Phase.Outcome = &outcome
	}

	snap := Snapshot{Game: &copied}
	if h.clocks != nil {
		if state, ok := h.clocks.Clock(g.ID); ok {
			snap.Clock = state
		}
	}
	return snap
}
