package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mcoot/quarto/internal/dependencies/clock"
	"github.com/mcoot/quarto/internal/dependencies/random"
	"github.com/mcoot/quarto/internal/events"
	"github.com/mcoot/quarto/internal/host"
	"github.com/mcoot/quarto/internal/services/board"
	"github.com/mcoot/quarto/internal/services/game"
	"github.com/mcoot/quarto/internal/services/timer"
	"github.com/mcoot/quarto/internal/services/victory"
	"github.com/mcoot/quarto/internal/storage"
	"github.com/mcoot/quarto/internal/storage/memory"
	redisstorage "github.com/mcoot/quarto/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	VictoryService *victory.Service
	GameController *game.Controller
	Bus            *events.Bus
	Scheduler      *timer.Scheduler
	Host           *host.Host

	logger  *slog.Logger
	cancel  context.CancelFunc
	stopped sync.WaitGroup
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired. Start must be
// called before timers run or events are delivered.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	bus := events.NewBus(logger)
	boardService := board.New(rnd, logger)
	victoryService := victory.New()
	gameController := game.NewController(store, boardService, victoryService, bus, clk, rnd, logger)
	h := host.New(gameController, logger)
	scheduler := timer.NewScheduler(clk, h, logger)
	h.SetClockSource(scheduler)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		VictoryService: victoryService,
		GameController: gameController,
		Bus:            bus,
		Scheduler:      scheduler,
		Host:           h,
		logger:         logger,
	}
}

// Start runs the event bus and the timer scheduler in the background
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	go a.Bus.Run()
	sub := a.Bus.SubscribeLossless("timer", "")

	a.stopped.Add(1)
	go func() {
		defer a.stopped.Done()
		defer a.Bus.Unsubscribe(sub)
		a.Scheduler.Run(ctx, sub.Events())
	}()

	a.logger.Info("application started")
}

// Close stops the scheduler and the event bus and releases the storage
// connection, if it holds one
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.Bus.Close()
	a.stopped.Wait()

	if closer, ok := a.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}
}

// ConfigFromEnv builds a factory config from QUARTO_STORAGE and
// QUARTO_REDIS_URL
func ConfigFromEnv(logger *slog.Logger) (Config, error) {
	cfg := Config{
		Logger:      logger,
		StorageType: os.Getenv("QUARTO_STORAGE"),
	}
	if cfg.StorageType != StorageTypeRedis {
		return cfg, nil
	}

	redisURL := os.Getenv("QUARTO_REDIS_URL")
	if redisURL == "" {
		return Config{}, errors.New("QUARTO_REDIS_URL required when QUARTO_STORAGE=redis")
	}
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = redisURL
	cfg.RedisConfig = &redisCfg
	return cfg, nil
}
