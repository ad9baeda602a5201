package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/quarto/internal/api/response"
)

// Output handles formatting output based on the configured format. It is
// safe for concurrent use.
type Output struct {
	mu     sync.Mutex
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// IsJSON reports whether output is machine-readable
func (o *Output) IsJSON() bool {
	return o.format == FormatJSON
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.IsJSON() {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.IsJSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

// Prompt writes an input prompt. JSON output has no prompts.
func (o *Output) Prompt(prompt string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.IsJSON() {
		fmt.Fprint(o.w, prompt)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.ClaimResponse:
		o.printClaim(v)
	case []response.Piece:
		o.printPieces(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case StreamEvent:
		o.printStreamEvent(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	o.printBoard(g.Board)

	fmt.Fprintf(o.w, "Hands: P1 %s, P2 %s\n", handCode(g.Hands.Player1), handCode(g.Hands.Player2))

	codes := make([]string, len(g.Available))
	for i, p := range g.Available {
		codes[i] = p.Code
	}
	fmt.Fprintf(o.w, "Available (%d): %s\n", len(codes), strings.Join(codes, " "))

	if g.Clock != nil {
		fmt.Fprintf(o.w, "Clock: P1 %s, P2 %s\n", g.Clock.Remaining[0], g.Clock.Remaining[1])
	}

	fmt.Fprintln(o.w, Status(g.Phase))
}

func (o *Output) printBoard(cells [][]*response.Piece) {
	size := len(cells)

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "  %d   ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("------", size) + "+"
	fmt.Fprintln(o.w, border)

	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, " %d |", row)
		for col := 0; col < size; col++ {
			if cell := cells[row][col]; cell != nil {
				fmt.Fprintf(o.w, " %s ", cell.Code)
			} else {
				fmt.Fprint(o.w, "  .   ")
			}
		}
		fmt.Fprintln(o.w, "|")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printGameList(list response.GameList) {
	if len(list.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range list.Games {
		fmt.Fprintf(o.w, "%s  %-14s  %s\n", g.ID, g.Phase.Kind, Status(g.Phase))
	}
}

func (o *Output) printClaim(c response.ClaimResponse) {
	if c.Win {
		fmt.Fprintf(o.w, "Quarto! %s on %s\n", c.Victory.Attribute, c.Victory.Description)
	} else if c.Game.Phase.Kind != "ended" {
		fmt.Fprintln(o.w, "No line found")
	}
	o.printGame(c.Game)
}

func (o *Output) printPieces(pieces []response.Piece) {
	for _, p := range pieces {
		fmt.Fprintf(o.w, "%s  %-6s %-6s %-5s %s\n", p.Code, p.Width, p.Shape, p.Color, p.Fill)
	}
}

func (o *Output) printStreamEvent(e StreamEvent) {
	timestamp := e.Time.Format("2006-01-02 15:04:05")
	// Remove newlines for cleaner display
	displayData := strings.ReplaceAll(e.Data, "\n", " ")
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, e.Event, displayData)
}

func handCode(p *response.Piece) string {
	if p == nil {
		return "-"
	}
	return p.Code
}

// Status describes the phase in one line
func Status(p response.Phase) string {
	switch p.Kind {
	case "selecting":
		return fmt.Sprintf("Player %d: select a piece for your opponent", p.Player)
	case "placing":
		return fmt.Sprintf("Player %d: place your piece", p.Player)
	case "awaiting_claim":
		if p.Deadline != nil {
			return fmt.Sprintf("Board full: call quarto before %s", p.Deadline.Local().Format(time.TimeOnly))
		}
		return "Board full: call quarto"
	case "ended":
		return "Game over: " + DescribeOutcome(p.Outcome)
	}
	return p.Kind
}

// DescribeOutcome describes how a game ended
func DescribeOutcome(o *response.Outcome) string {
	if o == nil {
		return "unknown outcome"
	}
	if o.Kind == "draw" {
		return "draw"
	}
	if o.Reason == "timeout" {
		return fmt.Sprintf("player %d wins on time", o.Winner)
	}
	if o.Victory != nil {
		return fmt.Sprintf("player %d wins with %s on %s", o.Winner, o.Victory.Attribute, o.Victory.Description)
	}
	return fmt.Sprintf("player %d wins", o.Winner)
}
