package cli

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <id>",
		Short: "Stream a game's events",
		Long: `Connect to the game's SSE endpoint and stream events in real time.

Events include:
  - game_started: Game created or reset
  - piece_selected: A piece was handed to the opponent
  - piece_placed: A piece went on the board
  - phase_changed: The turn moved on
  - claim_window_opened: The board is full, call quarto now
  - claim_failed: A quarto call found no line
  - game_ended: Win or draw
  - game_deleted: The game was removed (ends the stream)
  - action_rejected: A command was refused

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return streamEvents(ctx, out, args[0])
		},
	}
}

// StreamEvent is one message received from an event stream
type StreamEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, out *Output, gameID string) error {
	body, err := client.Stream(ctx, gamePath(gameID, "events"))
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if !out.IsJSON() {
		out.PrintMessage(fmt.Sprintf("Connected to game %s", gameID))
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			// End of event
			if currentEvent != "" && currentEvent != "connected" {
				out.Print(StreamEvent{
					Time:  time.Now(),
					Event: currentEvent,
					Data:  strings.Join(dataLines, "\n"),
				})
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !out.IsJSON() {
				out.PrintMessage("Disconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !out.IsJSON() {
		out.PrintMessage("Disconnected")
	}
	return nil
}
