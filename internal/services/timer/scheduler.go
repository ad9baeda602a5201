package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/quarto/internal/dependencies/clock"
	"github.com/mcoot/quarto/internal/model"
)

// Driver receives the deadline signals produced by the scheduler
type Driver interface {
	ExpireClaimWindow(ctx context.Context, gameID model.GameID) error
	TimeOut(ctx context.Context, gameID model.GameID, player model.Player) error
}

// ClockState is a snapshot of a game's chess clock
type ClockState struct {
	Enabled   bool
	Active    model.Player
	Running   bool
	Budget    time.Duration
	Remaining [2]time.Duration // indexed by Player-1
}

// gameTimers holds the timers of one game. Every arm or disarm bumps
// generation so that callbacks from replaced timers can tell they are stale.
type gameTimers struct {
	chess      *ChessClock // nil when the game has no time budget
	turn       clock.Timer
	claim      clock.Timer
	generation uint64
}

func (g *gameTimers) stop() {
	if g.turn != nil {
		g.turn.Stop()
		g.turn = nil
	}
	if g.claim != nil {
		g.claim.Stop()
		g.claim = nil
	}
	g.generation++
}

// Scheduler owns the chess clocks and claim-window deadlines of every game.
// It learns about games only from events and reports back through a Driver.
type Scheduler struct {
	mu     sync.Mutex
	games  map[model.GameID]*gameTimers
	clock  clock.Clock
	driver Driver
	logger *slog.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(clock clock.Clock, driver Driver, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		games:  make(map[model.GameID]*gameTimers),
		clock:  clock,
		driver: driver,
		logger: logger.With(slog.String("component", "timer")),
	}
}

// Run handles events until the channel closes or ctx is done, then stops
// every pending timer
func (s *Scheduler) Run(ctx context.Context, events <-chan model.Event) {
	defer s.StopAll()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			s.Handle(event)
		case <-ctx.Done():
			return
		}
	}
}

// Handle reacts to a single controller event
func (s *Scheduler) Handle(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clocks switch at the moment the move was made, not when the event
	// reaches the scheduler
	at := event.Timestamp
	if at.IsZero() {
		at = s.clock.Now()
	}

	switch event.Type {
	case model.EventGameStarted:
		payload, ok := event.Payload.(model.GameStartedPayload)
		if !ok {
			return
		}
		if existing, ok := s.games[event.GameID]; ok {
			existing.stop()
		}
		g := &gameTimers{}
		if payload.Config.TimeBudget > 0 {
			g.chess = NewChessClock(payload.Config.TimeBudget)
		}
		s.games[event.GameID] = g
		s.startTurn(event.GameID, g, event.Phase.Player, at)

	case model.EventPhaseChanged:
		g, ok := s.games[event.GameID]
		if !ok || !event.Phase.IsActive() {
			return
		}
		if g.chess != nil && g.chess.Active() == event.Phase.Player {
			return
		}
		s.startTurn(event.GameID, g, event.Phase.Player, at)

	case model.EventClaimWindowOpened:
		g, ok := s.games[event.GameID]
		if !ok {
			return
		}
		s.pauseClock(g, at)
		s.armClaim(event.GameID, g, event.Phase.Deadline)

	case model.EventGameEnded:
		if g, ok := s.games[event.GameID]; ok {
			s.pauseClock(g, at)
			g.stop()
		}

	case model.EventGameDeleted:
		if g, ok := s.games[event.GameID]; ok {
			g.stop()
			delete(s.games, event.GameID)
		}
	}
}

// startTurn switches the chess clock to player as of at and arms their
// timeout
func (s *Scheduler) startTurn(gameID model.GameID, g *gameTimers, player model.Player, at time.Time) {
	if g.chess == nil || !player.Valid() {
		return
	}
	g.stop()

	g.chess.Start(player, at)
	left := g.chess.Remaining(player, s.clock.Now())
	generation := g.generation

	g.turn = s.clock.AfterFunc(left, func() {
		s.fireTimeout(gameID, player, generation)
	})
}

func (s *Scheduler) pauseClock(g *gameTimers, at time.Time) {
	if g.chess != nil {
		g.chess.Stop(at)
	}
}

func (s *Scheduler) armClaim(gameID model.GameID, g *gameTimers, deadline time.Time) {
	g.stop()
	generation := g.generation

	g.claim = s.clock.AfterFunc(deadline.Sub(s.clock.Now()), func() {
		s.fireClaimDeadline(gameID, generation)
	})
	s.logger.Debug("claim deadline armed",
		slog.String("game_id", string(gameID)),
		slog.Time("deadline", deadline))
}

// current reports whether the callback armed at generation is still live
func (s *Scheduler) current(gameID model.GameID, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[gameID]
	return ok && g.generation == generation
}

func (s *Scheduler) fireTimeout(gameID model.GameID, player model.Player, generation uint64) {
	if !s.current(gameID, generation) {
		return
	}
	s.logger.Info("player ran out of time",
		slog.String("game_id", string(gameID)),
		slog.Int("player", int(player)))
	if err := s.driver.TimeOut(context.Background(), gameID, player); err != nil {
		s.logger.Error("failed to deliver timeout",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
	}
}

func (s *Scheduler) fireClaimDeadline(gameID model.GameID, generation uint64) {
	if !s.current(gameID, generation) {
		return
	}
	s.logger.Info("claim window elapsed", slog.String("game_id", string(gameID)))
	if err := s.driver.ExpireClaimWindow(context.Background(), gameID); err != nil {
		s.logger.Error("failed to deliver claim deadline",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
	}
}

// Clock returns the chess clock state of a game. ok is false for games the
// scheduler has not seen.
func (s *Scheduler) Clock(gameID model.GameID) (ClockState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return ClockState{}, false
	}
	if g.chess == nil {
		return ClockState{}, true
	}

	now := s.clock.Now()
	return ClockState{
		Enabled: true,
		Active:  g.chess.Active(),
		Running: g.chess.Running(),
		Budget:  g.chess.Budget(),
		Remaining: [2]time.Duration{
			g.chess.Remaining(model.Player1, now),
			g.chess.Remaining(model.Player2, now),
		},
	}, true
}

// PendingGames returns the number of games with tracked timers
func (s *Scheduler) PendingGames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// StopAll cancels every pending timer
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.games {
		g.stop()
		delete(s.games, id)
	}
}
