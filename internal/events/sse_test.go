package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quarto/internal/model"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "piece_placed",
			data:      `{"row":1}`,
			expected:  "event: piece_placed\ndata: {\"row\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "game_ended",
			data:      "{\n  \"winner\": 1\n}",
			expected:  "event: game_ended\ndata: {\ndata:   \"winner\": 1\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "carriage returns and trailing newline",
			eventName: "test",
			data:      "line1\r\nline2\n",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(FormatMessage(tt.eventName, tt.data)))
		})
	}
}

func renderType(event model.Event) ([]byte, error) {
	return json.Marshal(map[string]string{"type": string(event.Type)})
}

func TestServeSSE_StreamsUntilGameDeleted(t *testing.T) {
	bus := newRunningBus(t)
	sub := bus.Subscribe("sse", "GAME1")
	defer bus.Unsubscribe(sub)

	bus.Publish(model.Event{Type: model.EventPiecePlaced, GameID: "GAME1"})
	bus.Publish(model.Event{Type: model.EventGameDeleted, GameID: "GAME1"})

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, sub, renderType)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not end on game deletion")
	}

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "event: connected\n"))
	assert.Contains(t, body, "event: piece_placed\ndata: {\"type\":\"piece_placed\"}\n\n")
	assert.Contains(t, body, "event: game_deleted\n")
}

func TestServeSSE_StopsOnClientDisconnect(t *testing.T) {
	bus := newRunningBus(t)
	sub := bus.Subscribe("sse", "GAME1")
	defer bus.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, sub, renderType)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after disconnect")
	}
	require.Contains(t, rec.Body.String(), "event: connected")
}
