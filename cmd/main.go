package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/cache"
	"github.com/Dosada05/padel-tournament/config"
	"github.com/Dosada05/padel-tournament/db"
	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/Dosada05/padel-tournament/publisher"
	"github.com/Dosada05/padel-tournament/repositories"
	api "github.com/Dosada05/padel-tournament/routes"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/Dosada05/padel-tournament/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	dbConn, err := db.Connect(connectCtx, cfg.DatabaseURL, db.Pool{MaxOpenConns: cfg.DBMaxOpenConns})
	cancelConnect()
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.Migrate(startupCtx, dbConn); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	var viewCache services.ViewCache
	if cfg.RedisURL != "" {
		store, err := cache.New(startupCtx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer store.Close()
		viewCache = store
		logger.Info("redis view cache enabled")
	}

	appMetrics := metrics.New()

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	pairRepo := repositories.NewPostgresPairRepository(dbConn)
	logger.Info("Repositories initialized")

	notifier := services.NewMultiNotifier(appMetrics, logger).Add("websocket", services.NewHubNotifier(wsHub))
	if cfg.SMTPEnabled() {
		notifier.Add("email", services.NewEmailNotifier(cfg))
		logger.Info("email notifications enabled", slog.String("smtp_host", cfg.SMTPHost))
	}

	bracketService := services.NewBracketService(dbConn, matchRepo, categoryRepo, wsHub, viewCache, appMetrics, logger)
	scheduleService := services.NewScheduleService(
		matchRepo,
		tournamentRepo,
		categoryRepo,
		pairRepo,
		notifier,
		wsHub,
		viewCache,
		appMetrics,
		logger,
		cfg.DefaultSlotMinutes,
	)
	logger.Info("Services initialized")

	var snapshots *publisher.Publisher
	if cfg.R2Enabled() && len(cfg.SnapshotTournaments) > 0 {
		uploader, err := storage.NewCloudflareR2Uploader(startupCtx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		snapshots, err = publisher.New(publisher.Config{
			CronSpec:    cfg.SnapshotCron,
			Tournaments: cfg.SnapshotTournaments,
		}, scheduleService, uploader, logger)
		if err != nil {
			logger.Error("failed to initialize schedule snapshot publisher", slog.Any("error", err))
			os.Exit(1)
		}
		snapshots.Start()
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Bracket:   handlers.NewBracketHandler(bracketService),
		Schedule:  handlers.NewScheduleHandler(scheduleService),
		Public:    handlers.NewPublicHandler(bracketService, scheduleService),
		WebSocket: handlers.NewWebSocketHandler(wsHub),
		Health:    handlers.NewHealthHandler(dbConn),
	}, appMetrics, cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if snapshots != nil {
			select {
			case <-snapshots.Stop().Done():
			case <-shutdownCtx.Done():
				logger.Warn("snapshot publisher did not stop in time")
			}
		}

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
