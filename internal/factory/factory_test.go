package factory

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/storage/memory"
	redisstorage "github.com/mcoot/quarto/internal/storage/redis"
	"github.com/mcoot/quarto/internal/testutil"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	t.Cleanup(app.Close)

	assert.IsType(t, &memory.Storage{}, app.Storage)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "sqlite"})
	assert.Error(t, err)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewRedisUnreachable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + addr

	_, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	assert.Error(t, err)
}

func TestNewRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		Logger:      testutil.NopLogger(),
		StorageType: StorageTypeRedis,
		RedisConfig: &redisCfg,
	})
	require.NoError(t, err)
	app.Start(testContext(t))
	t.Cleanup(app.Close)

	assert.IsType(t, &redisstorage.Storage{}, app.Storage)

	snap, err := app.Host.CreateGame(testContext(t), model.DefaultGameConfig())
	require.NoError(t, err)

	piece := snap.Game.Board.Available[0]
	snap, err = app.Host.SelectPiece(testContext(t), snap.Game.ID, piece)
	require.NoError(t, err)
	assert.Equal(t, model.Placing(model.Player2), snap.Game.Phase)

	snap, err = app.Host.PlacePiece(testContext(t), snap.Game.ID, model.Position{Row: 3, Col: 3})
	require.NoError(t, err)

	stored, err := app.Storage.GetGame(testContext(t), snap.Game.ID)
	require.NoError(t, err)
	placed, ok := stored.Board.Piece(model.Position{Row: 3, Col: 3})
	assert.True(t, ok)
	assert.Equal(t, piece, placed)
	assert.Equal(t, model.Selecting(model.Player2), stored.Phase)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		t.Setenv("QUARTO_STORAGE", "")

		cfg, err := ConfigFromEnv(nil)
		require.NoError(t, err)
		assert.Empty(t, cfg.StorageType)
		assert.Nil(t, cfg.RedisConfig)
	})

	t.Run("redis with url", func(t *testing.T) {
		t.Setenv("QUARTO_STORAGE", StorageTypeRedis)
		t.Setenv("QUARTO_REDIS_URL", "redis://cache:6379/2")

		cfg, err := ConfigFromEnv(nil)
		require.NoError(t, err)
		assert.Equal(t, StorageTypeRedis, cfg.StorageType)
		require.NotNil(t, cfg.RedisConfig)
		assert.Equal(t, "redis://cache:6379/2", cfg.RedisConfig.URL)
	})

	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("QUARTO_STORAGE", StorageTypeRedis)
		t.Setenv("QUARTO_REDIS_URL", "")

		_, err := ConfigFromEnv(nil)
		assert.Error(t, err)
	})
}
