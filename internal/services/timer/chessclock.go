package timer

import (
	"fmt"
	"time"

	"github.com/mcoot/quarto/internal/model"
)

// ChessClock tracks two countdown budgets of which at most one runs at a
// time. It reads time only from the values passed in.
type ChessClock struct {
	budget    time.Duration
	remaining [2]time.Duration // indexed by Player-1, as of since
	active    model.Player     // 0 while stopped
	since     time.Time
}

// NewChessClock creates a stopped clock with the full budget for both players
func NewChessClock(budget time.Duration) *ChessClock {
	return &ChessClock{
		budget:    budget,
		remaining: [2]time.Duration{budget, budget},
	}
}

// Start runs the given player's countdown, charging whoever was running
// until now
func (c *ChessClock) Start(player model.Player, now time.Time) {
	if !player.Valid() {
		return
	}
	c.Stop(now)
	c.active = player
	c.since = now
}

// Stop pauses the running countdown, if any
func (c *ChessClock) Stop(now time.Time) {
	if c.active == 0 {
		return
	}
	c.remaining[c.active-1] = c.Remaining(c.active, now)
	c.active = 0
}

// Remaining returns what is left of the player's budget at now, never
// negative
func (c *ChessClock) Remaining(player model.Player, now time.Time) time.Duration {
	if !player.Valid() {
		return 0
	}
	left := c.remaining[player-1]
	if player == c.active {
		left -= now.Sub(c.since)
	}
	if left < 0 {
		return 0
	}
	return left
}

// Active returns the player whose countdown is running, or 0
func (c *ChessClock) Active() model.Player {
	return c.active
}

// Running returns true while a countdown is running
func (c *ChessClock) Running() bool {
	return c.active != 0
}

// Budget returns the per-player budget the clock was created with
func (c *ChessClock) Budget() time.Duration {
	return c.budget
}

// FormatRemaining renders a duration as mm:ss, truncating to whole seconds.
// Negative durations render as 00:00.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
