package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/quarto/internal/api/response"
	"github.com/mcoot/quarto/internal/events"
	"github.com/mcoot/quarto/internal/factory"
	"github.com/mcoot/quarto/internal/host"
	"github.com/mcoot/quarto/internal/model"
)

const playHelp = `Commands:
  select <piece>     hand a piece to your opponent, e.g. select NRDH
  place <row> <col>  place the piece you were given (0-3)
  claim <1|2>        call quarto as player 1 or 2
  reset              start over with the same settings
  board              show the board
  help               show this help
  quit               leave the game`

func newPlayCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		Long: `Play Quarto with two players sharing one terminal.

Player 1 starts by choosing a piece for player 2. After each placement the
player who placed chooses the next piece. Once all 16 pieces are down either
player can call quarto until the claim window closes.

` + playHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app, err := factory.New(factory.Config{
				Logger: cfg.Logger(cmd.ErrOrStderr(), slog.LevelError),
			})
			if err != nil {
				return err
			}
			app.Start(ctx)
			defer app.Close()

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return NewSession(app.Host, app.Bus, out, flags.config()).Run(ctx, cmd.InOrStdin())
		},
	}

	flags.register(cmd)
	return cmd
}

// Session runs one hot-seat game against a host. Command results are printed
// as they happen; the end of a game is reported from the event stream so
// that claim window and clock expiry show up without any input.
type Session struct {
	host   *host.Host
	bus    *events.Bus
	out    *Output
	config model.GameConfig
	gameID model.GameID
}

// NewSession creates a session that will play one game with the given config
func NewSession(h *host.Host, bus *events.Bus, out *Output, config model.GameConfig) *Session {
	return &Session{
		host:   h,
		bus:    bus,
		out:    out,
		config: config,
	}
}

// Run creates the game and reads commands until quit, end of input or ctx
// cancellation
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	snap, err := s.host.CreateGame(ctx, s.config)
	if err != nil {
		return err
	}
	s.gameID = snap.Game.ID

	sub := s.bus.Subscribe("terminal", s.gameID)
	defer s.bus.Unsubscribe(sub)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	s.show(snap)
	s.out.PrintMessage("Type help for commands")
	s.prompt(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.execute(ctx, line); quit {
				return nil
			}
			s.prompt(ctx)

		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if event.Type == model.EventGameEnded {
				s.gameOver(ctx)
				s.prompt(ctx)
			}
		}
	}
}

// execute runs one command line and reports whether the session should end
func (s *Session) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var snap host.Snapshot
	var err error

	switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
	case "select":
		if len(args) != 1 {
			err = fmt.Errorf("usage: select <piece>")
			break
		}
		var piece model.Piece
		if piece, err = model.ParsePiece(args[0]); err != nil {
			break
		}
		snap, err = s.host.SelectPiece(ctx, s.gameID, piece)

	case "place":
		if len(args) != 2 {
			err = fmt.Errorf("usage: place <row> <col>")
			break
		}
		var pos model.Position
		if pos, err = parsePosition(args[0], args[1]); err != nil {
			break
		}
		snap, err = s.host.PlacePiece(ctx, s.gameID, pos)

	case "claim":
		if len(args) != 1 {
			err = fmt.Errorf("usage: claim <1|2>")
			break
		}
		var player int
		if player, err = strconv.Atoi(args[0]); err != nil {
			err = fmt.Errorf("invalid player %q", args[0])
			break
		}
		var result model.VictoryResult
		result, snap, err = s.host.ClaimWin(ctx, s.gameID, model.Player(player))
		if err == nil && !result.IsWin() && !snap.Game.IsEnded() {
			s.out.PrintMessage(fmt.Sprintf("Player %d called quarto but there is no line", player))
		}

	case "reset":
		snap, err = s.host.Reset(ctx, s.gameID)

	case "board":
		if snap, err = s.host.Game(ctx, s.gameID); err == nil {
			s.show(snap)
		} else {
			s.out.PrintError(err)
		}
		return false

	case "help":
		s.out.PrintMessage(playHelp)
		return false

	case "quit", "exit":
		return true

	default:
		err = fmt.Errorf("unknown command %q, type help for commands", command)
	}

	if err != nil {
		s.out.PrintError(err)
		return false
	}
	// A finished game is shown when its end event arrives
	if !snap.Game.IsEnded() {
		s.show(snap)
	}
	return false
}

func (s *Session) gameOver(ctx context.Context) {
	snap, err := s.host.Game(ctx, s.gameID)
	if err != nil {
		s.out.PrintError(err)
		return
	}
	s.show(snap)
	s.out.PrintMessage("Type reset to play again or quit to leave")
}

func (s *Session) show(snap host.Snapshot) {
	s.out.Print(response.GameFromSnapshot(snap))
}

func (s *Session) prompt(ctx context.Context) {
	snap, err := s.host.Game(ctx, s.gameID)
	if err != nil {
		s.out.Prompt("> ")
		return
	}

	phase := snap.Game.Phase
	switch phase.Kind {
	case model.PhaseSelecting:
		s.out.Prompt(fmt.Sprintf("P%d select> ", phase.Player))
	case model.PhasePlacing:
		s.out.Prompt(fmt.Sprintf("P%d place> ", phase.Player))
	case model.PhaseAwaitingClaim:
		s.out.Prompt("claim> ")
	default:
		s.out.Prompt("> ")
	}
}

func parsePosition(row, col string) (model.Position, error) {
	r, err := strconv.Atoi(row)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid row %q", row)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid col %q", col)
	}
	return model.Position{Row: r, Col: c}, nil
}

// readLines feeds input lines to the returned channel until end of input or
// until done is closed
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
