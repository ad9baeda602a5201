package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quarto/internal/factory"
	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/testutil"
)

// syncBuffer is a bytes.Buffer that can be read while a session writes to it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type sessionHarness struct {
	app    *factory.TestApp
	in     *io.PipeWriter
	out    *syncBuffer
	errOut *syncBuffer
	done   chan error
}

func startSession(t *testing.T, config model.GameConfig) *sessionHarness {
	t.Helper()

	app := factory.NewTestApp()
	app.Start(testContext(t))
	t.Cleanup(app.Close)
	app.MockRandom.QueueString("GAME01")

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	h := &sessionHarness{
		app:    app,
		in:     pw,
		out:    &syncBuffer{},
		errOut: &syncBuffer{},
		done:   make(chan error, 1),
	}

	session := NewSession(app.Host, app.Bus, NewOutput(FormatText, h.out, h.errOut), config)
	go func() {
		h.done <- session.Run(context.Background(), pr)
	}()
	return h
}

func (h *sessionHarness) send(t *testing.T, line string) {
	t.Helper()
	_, err := fmt.Fprintln(h.in, line)
	require.NoError(t, err)
}

func (h *sessionHarness) play(t *testing.T, layout testutil.Layout, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		piece, pos := layout.At(i)
		h.send(t, "select "+piece.Code())
		h.send(t, fmt.Sprintf("place %d %d", pos.Row, pos.Col))
	}
}

func (h *sessionHarness) quit(t *testing.T) {
	t.Helper()
	h.send(t, "quit")
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
}

func waitForOutput(t *testing.T, buf *syncBuffer, text string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), text)
	}, 2*time.Second, 5*time.Millisecond, "waiting for %q", text)
}

func TestSessionShowsNewGame(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	waitForOutput(t, h.out, "P1 select> ")
	h.quit(t)

	out := h.out.String()
	assert.Contains(t, out, "Game: GAME01")
	assert.Contains(t, out, "Available (16)")
	assert.Contains(t, out, "Player 1: select a piece for your opponent")
	assert.Contains(t, out, "Type help for commands")
}

func TestSessionSelectAndPlace(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	h.send(t, "select nrdh")
	waitForOutput(t, h.out, "Player 2: place your piece")
	assert.Contains(t, h.out.String(), "Hands: P1 -, P2 NRDH")

	h.send(t, "place 2 1")
	waitForOutput(t, h.out, " 2 |  .    NRDH   .     .   |")
	waitForOutput(t, h.out, "Player 2: select a piece for your opponent")
	waitForOutput(t, h.out, "P2 select> ")

	h.quit(t)
}

func TestSessionRejections(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	h.send(t, "place 0 0")
	waitForOutput(t, h.errOut, "Error: action not allowed in this phase")

	h.send(t, "select XXXX")
	waitForOutput(t, h.errOut, "Error: invalid piece code")

	h.send(t, "select")
	waitForOutput(t, h.errOut, "Error: usage: select <piece>")

	h.send(t, "place a b")
	h.send(t, "dance")
	waitForOutput(t, h.errOut, `Error: unknown command "dance"`)

	h.send(t, "claim 2")
	waitForOutput(t, h.errOut, "Error: not this player's turn")

	h.send(t, "claim 1")
	waitForOutput(t, h.out, "Player 1 called quarto but there is no line")

	h.quit(t)
	assert.NotContains(t, h.out.String(), "Game over")
}

func TestSessionQuartoWin(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	h.play(t, testutil.OrderedLayout(), model.PieceCount)
	waitForOutput(t, h.out, "Board full: call quarto")
	waitForOutput(t, h.out, "claim> ")

	h.send(t, "claim 2")
	waitForOutput(t, h.out, "Game over: player 2 wins with width on row 1")
	waitForOutput(t, h.out, "Type reset to play again or quit to leave")

	h.quit(t)
	assert.Equal(t, 1, strings.Count(h.out.String(), "Game over:"))
}

func TestSessionClaimWindowExpires(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	h.play(t, testutil.DrawLayout(), model.PieceCount)
	waitForOutput(t, h.out, "claim> ")

	// No input needed, the deadline ends the game on its own
	require.Eventually(t, func() bool {
		return h.app.MockClock.PendingTimers() == 1
	}, time.Second, 5*time.Millisecond)
	h.app.MockClock.Advance(model.DefaultClaimWindow)

	waitForOutput(t, h.out, "Game over: draw")
	h.quit(t)
}

func TestSessionChessClockTimeout(t *testing.T) {
	config := model.DefaultGameConfig()
	config.TimeBudget = time.Minute
	h := startSession(t, config)

	require.Eventually(t, func() bool {
		return h.app.MockClock.PendingTimers() == 1
	}, time.Second, 5*time.Millisecond)

	h.send(t, "board")
	waitForOutput(t, h.out, "Clock: P1 01:00, P2 01:00")

	h.app.MockClock.Advance(time.Minute)
	waitForOutput(t, h.out, "Game over: player 2 wins on time")

	h.send(t, "select WSLF")
	waitForOutput(t, h.errOut, "Error: action not allowed in this phase")
	h.quit(t)
}

func TestSessionReset(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	h.play(t, testutil.DrawLayout(), 2)
	h.send(t, "reset")
	waitForOutput(t, h.out, "Player 1: select a piece for your opponent")
	h.quit(t)

	assert.Equal(t, 2, strings.Count(h.out.String(), "Available (16)"))
}

func TestSessionEndOfInput(t *testing.T) {
	h := startSession(t, model.DefaultGameConfig())

	waitForOutput(t, h.out, "P1 select> ")
	require.NoError(t, h.in.Close())

	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop at end of input")
	}
}

func TestSessionInvalidConfig(t *testing.T) {
	app := factory.NewTestApp()
	config := model.DefaultGameConfig()
	config.ClaimWindow = 0

	session := NewSession(app.Host, app.Bus, NewOutput(FormatText, io.Discard, io.Discard), config)
	err := session.Run(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestFlagsConfigKeepsHugeBudgetInvalid(t *testing.T) {
	flags := gameFlags{minutes: 1 << 61, claimWindow: model.DefaultClaimWindow}

	config := flags.config()
	assert.Greater(t, config.TimeBudget, model.MaxConfigDuration)
	assert.ErrorIs(t, config.Validate(), model.ErrInvalidConfig)
}
