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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/betting-league/config"
	"github.com/Dosada05/betting-league/db"
	"github.com/Dosada05/betting-league/handlers"
	"github.com/Dosada05/betting-league/live"
	"github.com/Dosada05/betting-league/repositories"
	api "github.com/Dosada05/betting-league/routes"
	"github.com/Dosada05/betting-league/services"
	"github.com/Dosada05/betting-league/storage"
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

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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

	if err := db.Migrate(dbConn); err != nil {
		logger.Error("failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	crestUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	logger.Info("Cloudflare R2 uploader initialized")

	resultsHub := live.NewHub(logger)
	go resultsHub.Run()
	logger.Info("results hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	refereeRepo := repositories.NewPostgresRefereeRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	wagerRepo := repositories.NewPostgresWagerRepository(dbConn)
	rechargeRepo := repositories.NewPostgresRechargeRepository(dbConn)
	roleChangeRepo := repositories.NewPostgresRoleChangeRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, playerRepo, refereeRepo)
	walletService := services.NewWalletService(dbConn, userRepo, rechargeRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, matchRepo, crestUploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	refereeService := services.NewRefereeService(refereeRepo)
	matchService := services.NewMatchService(matchRepo, teamRepo, refereeRepo, wagerRepo)
	simulationService := services.NewSimulationService(dbConn, matchRepo, wagerRepo, userRepo, resultsHub)
	bettingService := services.NewBettingService(dbConn, matchRepo, wagerRepo, userRepo)
	statsService := services.NewStatsService(teamRepo, playerRepo, matchRepo, wagerRepo)
	graphService := services.NewGraphService(teamRepo, playerRepo, matchRepo)
	adminService := services.NewAdminService(dbConn, userRepo, roleChangeRepo)
	logger.Info("services initialized")

	h := api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Team:      handlers.NewTeamHandler(teamService),
		Player:    handlers.NewPlayerHandler(playerService),
		Referee:   handlers.NewRefereeHandler(refereeService),
		Match:     handlers.NewMatchHandler(matchService, simulationService),
		Wallet:    handlers.NewWalletHandler(walletService),
		Wager:     handlers.NewWagerHandler(bettingService),
		Stats:     handlers.NewStatsHandler(statsService, graphService),
		Admin:     handlers.NewAdminHandler(adminService),
		WebSocket: handlers.NewWebSocketHandler(resultsHub),
	}
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, h, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
