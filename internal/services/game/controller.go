package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/quarto/internal/dependencies/clock"
	"github.com/mcoot/quarto/internal/dependencies/random"
	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/services/board"
	"github.com/mcoot/quarto/internal/services/victory"
	"github.com/mcoot/quarto/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Publisher receives the events emitted by the controller
type Publisher interface {
	Publish(event model.Event)
}

// Controller manages the turn state machine of each game. It is not safe for
// concurrent use on the same game; callers serialize access.
type Controller struct {
	storage        storage.Storage
	boardService   *board.Service
	victoryService *victory.Service
	publisher      Publisher
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	victoryService *victory.Service,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		boardService:   boardService,
		victoryService: victoryService,
		publisher:      publisher,
		clock:          clock,
		random:         random,
		logger:         logger.With(slog.String("component", "game")),
	}
}

// CreateGame starts a new game with a shuffled pool, player 1 to select
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, gameIDAlphabet)),
		Config:    cfg,
		Board:     c.boardService.NewBoard(),
		Phase:     model.Selecting(model.Player1),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Duration("claim_window", cfg.ClaimWindow),
		slog.Duration("time_budget", cfg.TimeBudget),
	)

	c.emit(game, model.EventGameStarted, model.Player1, model.GameStartedPayload{
		Config:    cfg,
		Available: game.Board.AvailablePieces(),
	})

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns every stored game, oldest first
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// SelectPiece hands a piece from the pool to the opponent of the selecting
// player and passes the turn to them
func (c *Controller) SelectPiece(ctx context.Context, gameID model.GameID, piece model.Piece) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Phase.Kind != model.PhaseSelecting {
		return c.reject(game, "select", 0, model.ErrWrongPhase)
	}

	selector := game.Phase.Player
	recipient := selector.Opponent()
	if err := game.Board.AssignPieceToPlayer(recipient, piece); err != nil {
		return c.reject(game, "select", selector, err)
	}

	game.Phase = model.Placing(recipient)
	if err := c.save(ctx, game); err != nil {
		return err
	}

	c.emit(game, model.EventPieceSelected, selector, model.PieceSelectedPayload{Piece: piece, Recipient: recipient})
	c.emit(game, model.EventPhaseChanged, recipient, nil)
	return nil
}

// PlacePiece puts the active player's held piece on the grid. The 16th
// placement opens the claim window instead of returning to selection.
func (c *Controller) PlacePiece(ctx context.Context, gameID model.GameID, pos model.Position) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Phase.Kind != model.PhasePlacing {
		return c.reject(game, "place", 0, model.ErrWrongPhase)
	}

	placer := game.Phase.Player
	if err := c.boardService.ValidatePlacement(game.Board, placer, pos); err != nil {
		return c.reject(game, "place", placer, err)
	}

	piece, _ := game.Board.Hand(placer)
	if err := game.Board.PlacePlayerPiece(placer, pos); err != nil {
		return c.reject(game, "place", placer, err)
	}

	if game.Board.IsFull() {
		game.Phase = model.AwaitingClaim(placer, c.clock.Now().Add(game.Config.ClaimWindow))
	} else {
		game.Phase = model.Selecting(placer)
	}
	if err := c.save(ctx, game); err != nil {
		return err
	}

	c.emit(game, model.EventPiecePlaced, placer, model.PiecePlacedPayload{Piece: piece, Position: pos})
	if game.Phase.Kind == model.PhaseAwaitingClaim {
		c.logger.Info("claim window opened",
			slog.String("game_id", string(game.ID)),
			slog.Time("deadline", game.Phase.Deadline),
		)
		c.emit(game, model.EventClaimWindowOpened, placer, nil)
	} else {
		c.emit(game, model.EventPhaseChanged, placer, nil)
	}
	return nil
}

// ClaimWin evaluates a quarto call. Outside the claim window only the active
// player may call; inside it either player may, until the deadline. A call
// that finds no line ends the game as a draw if the board is full and is
// otherwise ignored.
func (c *Controller) ClaimWin(ctx context.Context, gameID model.GameID, player model.Player) (model.VictoryResult, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.NoWin, err
	}

	if !player.Valid() {
		return model.NoWin, c.reject(game, "claim", 0, model.ErrInvalidPlayer)
	}

	switch game.Phase.Kind {
	case model.PhaseEnded:
		return model.NoWin, c.reject(game, "claim", player, model.ErrWrongPhase)
	case model.PhaseSelecting, model.PhasePlacing:
		if player != game.Phase.Player {
			return model.NoWin, c.reject(game, "claim", player, model.ErrNotYourTurn)
		}
	case model.PhaseAwaitingClaim:
		if !c.clock.Now().Before(game.Phase.Deadline) {
			// The deadline signal has not arrived yet, settle it here
			if err := c.end(ctx, game, model.DrawOutcome()); err != nil {
				return model.NoWin, err
			}
			return model.NoWin, model.ErrClaimWindowClosed
		}
	}

	result := c.victoryService.CheckWin(game.Board, game.Config.Win)
	if result.IsWin() {
		return result, c.end(ctx, game, model.QuartoOutcome(player, result))
	}
	if game.Board.IsFull() {
		return model.NoWin, c.end(ctx, game, model.DrawOutcome())
	}

	c.logger.Debug("claim found no line",
		slog.String("game_id", string(game.ID)),
		slog.Int("player", int(player)),
	)
	c.emit(game, model.EventClaimFailed, player, model.ClaimFailedPayload{Claimant: player})
	return model.NoWin, nil
}

// ExpireClaimWindow ends the game as a draw if it is still waiting for a
// claim. In any other phase it does nothing.
func (c *Controller) ExpireClaimWindow(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Phase.Kind != model.PhaseAwaitingClaim {
		c.logger.Debug("ignoring stale claim deadline",
			slog.String("game_id", string(game.ID)),
			slog.String("phase", string(game.Phase.Kind)),
		)
		return nil
	}

	return c.end(ctx, game, model.DrawOutcome())
}

// TimeOut ends the game in favour of the opponent of the player whose clock
// ran out. Only the player whose turn it is has a running clock, so a
// signal for anyone else, or one arriving during the claim window or after
// the end, is stale and does nothing.
func (c *Controller) TimeOut(ctx context.Context, gameID model.GameID, player model.Player) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if !player.Valid() {
		return model.ErrInvalidPlayer
	}
	if !game.Phase.IsActive() || game.Phase.Player != player {
		c.logger.Debug("ignoring stale timeout",
			slog.String("game_id", string(game.ID)),
			slog.String("phase", string(game.Phase.Kind)),
			slog.Int("player", int(player)),
		)
		return nil
	}

	return c.end(ctx, game, model.TimeoutOutcome(player.Opponent()))
}

// ResetGame reshuffles the pool into a fresh board and returns to player 1
// selecting, whatever the current phase
func (c *Controller) ResetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	c.boardService.ResetBoard(game.Board)
	game.Phase = model.Selecting(model.Player1)
	if err := c.save(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game reset", slog.String("game_id", string(game.ID)))

	c.emit(game, model.EventGameStarted, model.Player1, model.GameStartedPayload{
		Config:    game.Config,
		Available: game.Board.AvailablePieces(),
	})
	return game, nil
}

// DeleteGame removes a game. Listeners are told so they can release timers.
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	c.emit(game, model.EventGameDeleted, 0, nil)
	return nil
}

// end moves the game into its terminal phase
func (c *Controller) end(ctx context.Context, game *model.Game, outcome model.Outcome) error {
	game.Phase = model.Ended(outcome)
	if err := c.save(ctx, game); err != nil {
		return err
	}

	c.logger.Info("game ended",
		slog.String("game_id", string(game.ID)),
		slog.String("outcome", string(outcome.Kind)),
		slog.Int("winner", int(outcome.Winner)),
		slog.String("reason", string(outcome.Reason)),
	)

	c.emit(game, model.EventGameEnded, outcome.Winner, model.GameEndedPayload{Outcome: outcome})
	return nil
}

// save checks the piece inventory and persists the game
func (c *Controller) save(ctx context.Context, game *model.Game) error {
	if err := c.boardService.VerifyInventory(game.Board); err != nil {
		return fmt.Errorf("game %s: %w", game.ID, err)
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// reject reports an action that was refused without touching the game
func (c *Controller) reject(game *model.Game, action string, player model.Player, err error) error {
	c.logger.Debug("action rejected",
		slog.String("game_id", string(game.ID)),
		slog.String("action", action),
		slog.String("phase", string(game.Phase.Kind)),
		slog.String("error", err.Error()),
	)
	c.emit(game, model.EventActionRejected, player, model.ActionRejectedPayload{
		Action: action,
		Reason: err.Error(),
	})
	return err
}

func (c *Controller) emit(game *model.Game, eventType model.EventType, player model.Player, payload any) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    game.ID,
		Player:    player,
		Phase:     game.Phase,
		Payload:   payload,
	})
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	SelectPiece(ctx context.Context, gameID model.GameID, piece model.Piece) error
	PlacePiece(ctx context.Context, gameID model.GameID, pos model.Position) error
	ClaimWin(ctx context.Context, gameID model.GameID, player model.Player) (model.VictoryResult, error)
	ExpireClaimWindow(ctx context.Context, gameID model.GameID) error
	TimeOut(ctx context.Context, gameID model.GameID, player model.Player) error
	ResetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
}

var _ ControllerInterface = (*Controller)(nil)
