package cli

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/quarto/internal/api"
	"github.com/mcoot/quarto/internal/factory"
	redisstorage "github.com/mcoot/quarto/internal/storage/redis"
)

func newServeCmd() *cobra.Command {
	var host string
	var port int
	var storageType string
	var redisURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game host over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := api.ServerConfigFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				serverConfig.Host = host
			}
			if cmd.Flags().Changed("port") {
				serverConfig.Port = port
			}

			logger := cfg.Logger(cmd.ErrOrStderr(), slog.LevelInfo)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			factoryConfig := factory.Config{Logger: logger, StorageType: storageType}
			if storageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				redisCfg.URL = redisURL
				factoryConfig.RedisConfig = &redisCfg
			}

			app, err := factory.New(factoryConfig)
			if err != nil {
				return err
			}
			app.Start(ctx)
			defer app.Close()

			router := api.NewRouter(api.RouterConfig{
				Logger: logger,
				Host:   app.Host,
				Bus:    app.Bus,
			})

			return api.NewServer(router, serverConfig, logger).Run(ctx)
		},
	}

	def := api.DefaultServerConfig()
	cmd.Flags().StringVar(&host, "host", def.Host, "Listen address (env: QUARTO_HOST)")
	cmd.Flags().IntVar(&port, "port", def.Port, "Listen port (env: QUARTO_PORT)")
	cmd.Flags().StringVar(&storageType, "storage", getEnvOrDefault("QUARTO_STORAGE", factory.StorageTypeMemory), "Game storage: memory or redis (env: QUARTO_STORAGE)")
	cmd.Flags().StringVar(&redisURL, "redis-url", getEnvOrDefault("QUARTO_REDIS_URL", redisstorage.DefaultConfig().URL), "Redis URL for redis storage (env: QUARTO_REDIS_URL)")

	return cmd
}
