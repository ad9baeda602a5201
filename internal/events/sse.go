package events

import (
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/quarto/internal/model"
)

// Time between keepalive comments on an idle stream
const pingPeriod = 15 * time.Second

// Renderer turns an event into the data line of an SSE message
type Renderer func(event model.Event) ([]byte, error)

// ServeSSE streams a subscription to the client until the client disconnects,
// the subscription closes or the game is deleted. The caller owns the
// subscription and should unsubscribe once ServeSSE returns.
func ServeSSE(w http.ResponseWriter, r *http.Request, sub *Subscription, render Renderer) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	_, _ = w.Write(FormatMessage("connected", `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			data, err := render(event)
			if err != nil {
				continue
			}
			if _, err := w.Write(FormatMessage(string(event.Type), string(data))); err != nil {
				return
			}
			flusher.Flush()
			if event.Type == model.EventGameDeleted {
				return
			}

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// FormatMessage formats an SSE message. Each line of data gets its own
// "data: " prefix.
func FormatMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteString("\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
