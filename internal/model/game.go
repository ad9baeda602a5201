package model

import "time"

// GameID uniquely identifies a game
type GameID string

// PhaseKind is the current step of the turn state machine
type PhaseKind string

const (
	PhaseSelecting     PhaseKind = "selecting"      // Active player picks a piece for the opponent
	PhasePlacing       PhaseKind = "placing"        // Active player places the piece they hold
	PhaseAwaitingClaim PhaseKind = "awaiting_claim" // Board full, waiting for a quarto call
	PhaseEnded         PhaseKind = "ended"          // Terminal until reset
)

// Phase is the tagged turn state. Player is set while selecting or placing,
// Deadline while awaiting a claim, Outcome once ended.
type Phase struct {
	Kind     PhaseKind
	Player   Player
	Deadline time.Time
	Outcome  *Outcome
}

// Selecting returns the select phase for the given player
func Selecting(player Player) Phase {
	return Phase{Kind: PhaseSelecting, Player: player}
}

// Placing returns the place phase for the given player
func Placing(player Player) Phase {
	return Phase{Kind: PhasePlacing, Player: player}
}

// AwaitingClaim returns the claim-window phase. The last placer is kept as
// Player for display.
func AwaitingClaim(lastPlacer Player, deadline time.Time) Phase {
	return Phase{Kind: PhaseAwaitingClaim, Player: lastPlacer, Deadline: deadline}
}

// Ended returns the terminal phase with the given outcome
func Ended(outcome Outcome) Phase {
	return Phase{Kind: PhaseEnded, Outcome: &outcome}
}

// IsActive returns true while moves can still be made
func (p Phase) IsActive() bool {
	return p.Kind == PhaseSelecting || p.Kind == PhasePlacing
}

// OutcomeKind distinguishes a win from a draw
type OutcomeKind string

const (
	OutcomeWin  OutcomeKind = "win"
	OutcomeDraw OutcomeKind = "draw"
)

// WinReason explains how a win came about
type WinReason string

const (
	WinReasonQuarto  WinReason = "quarto"
	WinReasonTimeout WinReason = "timeout"
)

// Outcome describes how a game ended. Victory is only set for quarto wins.
type Outcome struct {
	Kind    OutcomeKind
	Winner  Player
	Reason  WinReason
	Victory VictoryResult
}

// DrawOutcome returns a draw
func DrawOutcome() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

// QuartoOutcome returns a win by a successful quarto call
func QuartoOutcome(winner Player, victory VictoryResult) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: winner, Reason: WinReasonQuarto, Victory: victory}
}

// TimeoutOutcome returns a win because the loser ran out of time
func TimeoutOutcome(winner Player) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: winner, Reason: WinReasonTimeout}
}

// DefaultClaimWindow is how long players have to call quarto after the
// last piece is placed
const DefaultClaimWindow = 7 * time.Second

// DefaultTimeBudgetMinutes is the per-player clock used when the timer is
// enabled without an explicit budget
const DefaultTimeBudgetMinutes = 3

// MaxConfigDuration caps both the claim window and the time budget
const MaxConfigDuration = 24 * time.Hour

// GameConfig holds the settings chosen before a game starts
type GameConfig struct {
	Win         WinConfig
	ClaimWindow time.Duration
	TimeBudget  time.Duration // Per-player chess clock, 0 disables it
}

// DefaultGameConfig returns the default configuration (no chess clock)
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Win:         DefaultWinConfig(),
		ClaimWindow: DefaultClaimWindow,
	}
}

// Validate checks the configuration for unusable values
func (c GameConfig) Validate() error {
	if c.ClaimWindow <= 0 || c.TimeBudget < 0 {
		return ErrInvalidConfig
	}
	if c.ClaimWindow > MaxConfigDuration || c.TimeBudget > MaxConfigDuration {
		return ErrInvalidConfig
	}
	if c.TimeBudget%time.Minute != 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Game is the aggregate for one match: board, phase and config
type Game struct {
	ID     GameID
	Config GameConfig
	Board  *Board
	Phase  Phase

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActivePlayer returns the player expected to act, or 0 outside the
// selecting and placing phases
func (g *Game) ActivePlayer() Player {
	if g.Phase.IsActive() {
		return g.Phase.Player
	}
	return 0
}

// IsEnded returns true once the game has reached its terminal phase
func (g *Game) IsEnded() bool {
	return g.Phase.Kind == PhaseEnded
}
