package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/quarto/internal/model"
)

const (
	// Buffer size for events waiting to be fanned out
	publishBufferSize = 256

	// Buffer size for each subscription
	subscriptionBufferSize = 256
)

// Subscription receives the events of one game, or of every game when
// created without a game ID
type Subscription struct {
	name        string
	gameID      model.GameID
	events      chan model.Event
	connectedAt time.Time

	// A lossless subscription makes the bus wait for buffer space instead of
	// dropping. Its reader must keep draining until it unsubscribes.
	lossless bool
	leaving  chan struct{}
	leaveOne sync.Once
}

// Events returns the channel events are delivered on. It is closed when the
// subscription is removed or the bus shuts down.
func (s *Subscription) Events() <-chan model.Event {
	return s.events
}

func (s *Subscription) wants(event model.Event) bool {
	return s.gameID == "" || s.gameID == event.GameID
}

func (s *Subscription) leave() {
	s.leaveOne.Do(func() {
		close(s.leaving)
	})
}

// Bus fans controller events out to subscribers. Publishing waits only when
// the bus buffer is full. Ordinary subscribers lose events once their own
// buffer is full; lossless subscribers hold up delivery until they catch up.
type Bus struct {
	subscriptions map[*Subscription]bool
	mu            sync.RWMutex
	logger        *slog.Logger

	// Channels for managing subscriptions
	register   chan *Subscription
	unregister chan *Subscription
	publish    chan model.Event
	done       chan struct{}
	closeOnce  sync.Once
}

// NewBus creates a new Bus. Run must be started before subscribing.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[*Subscription]bool),
		logger:        logger.With(slog.String("component", "events")),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		publish:       make(chan model.Event, publishBufferSize),
		done:          make(chan struct{}),
	}
}

// Run starts the bus event loop
func (b *Bus) Run() {
	b.logger.Info("event bus started")
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			count := len(b.subscriptions)
			b.mu.Unlock()
			b.logger.Info("subscriber registered",
				slog.String("subscriber", sub.name),
				slog.String("game_id", string(sub.gameID)),
				slog.Int("total_subscribers", count))

		case sub := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.subscriptions[sub]; ok {
				delete(b.subscriptions, sub)
				close(sub.events)
				count := len(b.subscriptions)
				b.mu.Unlock()
				b.logger.Info("subscriber unregistered",
					slog.String("subscriber", sub.name),
					slog.Duration("connection_duration", time.Since(sub.connectedAt)),
					slog.Int("total_subscribers", count))
			} else {
				b.mu.Unlock()
			}

		case event := <-b.publish:
			b.fanOut(event)

		case <-b.done:
			b.mu.Lock()
			count := len(b.subscriptions)
			for sub := range b.subscriptions {
				close(sub.events)
				delete(b.subscriptions, sub)
			}
			b.mu.Unlock()
			b.logger.Info("event bus stopped", slog.Int("disconnected_subscribers", count))
			return
		}
	}
}

func (b *Bus) fanOut(event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for sub := range b.subscriptions {
		if !sub.wants(event) {
			continue
		}
		if sub.lossless {
			select {
			case sub.events <- event:
			case <-sub.leaving:
			case <-b.done:
			}
			continue
		}
		select {
		case sub.events <- event:
		default:
			dropped++
			b.logger.Warn("event dropped - subscriber buffer full",
				slog.String("subscriber", sub.name),
				slog.String("event", string(event.Type)))
		}
	}
	if dropped > 0 {
		b.logger.Warn("event delivery partial failure",
			slog.String("game_id", string(event.GameID)),
			slog.Int("dropped", dropped))
	}
}

// Subscribe registers a new subscription. An empty gameID receives events
// for every game.
func (b *Bus) Subscribe(name string, gameID model.GameID) *Subscription {
	return b.subscribe(name, gameID, false)
}

// SubscribeLossless registers a subscription that never misses an event.
// Delivery to every subscriber stalls while its buffer is full, so it is
// meant for in-process consumers such as the timer scheduler.
func (b *Bus) SubscribeLossless(name string, gameID model.GameID) *Subscription {
	return b.subscribe(name, gameID, true)
}

func (b *Bus) subscribe(name string, gameID model.GameID, lossless bool) *Subscription {
	sub := &Subscription{
		name:        name,
		gameID:      gameID,
		events:      make(chan model.Event, subscriptionBufferSize),
		connectedAt: time.Now(),
		lossless:    lossless,
		leaving:     make(chan struct{}),
	}
	select {
	case b.register <- sub:
	case <-b.done:
		close(sub.events)
	}
	return sub
}

// Unsubscribe removes a subscription and closes its channel
func (b *Bus) Unsubscribe(sub *Subscription) {
	sub.leave()
	select {
	case b.unregister <- sub:
	case <-b.done:
	}
}

// Publish queues an event for delivery. It waits while the bus buffer is
// full and returns without delivering once the bus is closed.
func (b *Bus) Publish(event model.Event) {
	select {
	case b.publish <- event:
	case <-b.done:
		b.logger.Debug("event discarded - bus closed",
			slog.String("event", string(event.Type)),
			slog.String("game_id", string(event.GameID)))
	}
}

// Close shuts down the bus and closes every subscription
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

// SubscriberCount returns the number of live subscriptions
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
