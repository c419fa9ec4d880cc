package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"memematch-service/internal/app"
	"memematch-service/internal/config"
	"memematch-service/internal/infra/memory"
	infrapg "memematch-service/internal/infra/postgres"
	infraredis "memematch-service/internal/infra/redis"
	"memematch-service/internal/logger"
	"memematch-service/internal/relay"
	transport "memematch-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the relay and analytics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var store app.ResultStore = memory.NewResultStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = infrapg.NewResultStore(pool)
	} else {
		log.Warn().Msg("postgres not configured, results are not durable")
	}

	loader := app.NewSummaryLoader(store)
	analyticsTTL := config.TTLDuration(cfg.Analytics.TTL, time.Minute)
	var summaries app.SummaryRepository
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		summaries = infraredis.NewSummaryRepository(redisClient, loader, analyticsTTL)
	} else {
		summaries = memory.NewSummaryRepository(loader, analyticsTTL)
	}

	broadcast := relay.New(cfg.Relay.MaxResults)

	resultService := app.NewResultService(store, broadcast, log)
	analyticsService := app.NewAnalyticsService(summaries)
	donationService := app.NewDonationService(store, cfg.Donation.DeveloperAddress, log)

	server := transport.NewServer(transport.Config{
		Port:           finalPort,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            log,
		WS:             transport.NewWSHandler(broadcast, log),
		API:            transport.NewAPIHandler(analyticsService, resultService, donationService, log),
	})

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server...")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
