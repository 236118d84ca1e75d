package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smileroute/smileroute-backend/api/routes"
	"github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/internal/quote"
	"github.com/smileroute/smileroute-backend/internal/quotes"
	"github.com/smileroute/smileroute-backend/internal/treatments"
	"github.com/smileroute/smileroute-backend/pkg/config"
	"github.com/smileroute/smileroute-backend/pkg/db"
	"github.com/smileroute/smileroute-backend/pkg/logger"
	"github.com/smileroute/smileroute-backend/pkg/metrics"
	"github.com/smileroute/smileroute-backend/pkg/migrate"
	"github.com/smileroute/smileroute-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	treatmentsService, err := treatments.NewService(treatments.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create treatments service", err)
		os.Exit(1)
	}

	promotionsService, err := promotions.NewService(
		promotions.NewRepository(dbClient.DB()),
		redisClient,
		logg,
		cfg.Quote.PromoCacheTTL,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create promotions service", err)
		os.Exit(1)
	}

	quotesService, err := quotes.NewService(quotes.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotes service", err)
		os.Exit(1)
	}

	sessionStore, err := quote.NewSessionStore(redisClient, cfg.Quote.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}
	submitter, err := quote.NewSubmitter(quotesService, cfg.Quote.SubmissionTimeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create submitter", err)
		os.Exit(1)
	}
	sessionsService, err := quote.NewService(sessionStore, submitter, quoteMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote session service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			treatmentsService,
			promotionsService,
			sessionsService,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
