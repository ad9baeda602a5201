package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/quarto/internal/model"
)

func TestChessClock_RunsOnlyActivePlayer(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewChessClock(3 * time.Minute)

	assert.False(t, c.Running())
	assert.Equal(t, 3*time.Minute, c.Remaining(model.Player1, start))

	c.Start(model.Player1, start)
	assert.Equal(t, model.Player1, c.Active())
	assert.Equal(t, 2*time.Minute+50*time.Second, c.Remaining(model.Player1, start.Add(10*time.Second)))
	assert.Equal(t, 3*time.Minute, c.Remaining(model.Player2, start.Add(10*time.Second)))

	c.Start(model.Player2, start.Add(10*time.Second))
	assert.Equal(t, 2*time.Minute+50*time.Second, c.Remaining(model.Player1, start.Add(time.Minute)))
	assert.Equal(t, 2*time.Minute+10*time.Second, c.Remaining(model.Player2, start.Add(time.Minute)))

	c.Stop(start.Add(time.Minute))
	assert.False(t, c.Running())
	assert.Equal(t, 2*time.Minute+10*time.Second, c.Remaining(model.Player2, start.Add(time.Hour)))
}

func TestChessClock_RemainingNeverNegative(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewChessClock(time.Minute)
	c.Start(model.Player1, start)

	assert.Equal(t, time.Duration(0), c.Remaining(model.Player1, start.Add(2*time.Minute)))
	assert.Equal(t, time.Duration(0), c.Remaining(0, start))
}

func TestChessClock_StartInvalidPlayerIgnored(t *testing.T) {
	c := NewChessClock(time.Minute)
	c.Start(3, time.Now())
	assert.False(t, c.Running())
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "full default budget", input: 3 * time.Minute, expected: "03:00"},
		{name: "minutes and seconds", input: 2*time.Minute + 5*time.Second, expected: "02:05"},
		{name: "partial second truncated", input: 59*time.Second + 900*time.Millisecond, expected: "00:59"},
		{name: "zero", input: 0, expected: "00:00"},
		{name: "negative clamped", input: -5 * time.Second, expected: "00:00"},
		{name: "over an hour", input: 61 * time.Minute, expected: "61:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.input))
		})
	}
}
