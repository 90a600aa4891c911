package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-risk-predictor/internal/apidoc"
	"health-risk-predictor/internal/config"
	"health-risk-predictor/internal/inference"
	"health-risk-predictor/internal/platform/telegram"
	"health-risk-predictor/internal/prediction"
	"health-risk-predictor/internal/report"
	"health-risk-predictor/internal/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	logger.Info("Configuration loaded",
		"port", cfg.Server.Port,
		"inference_url", cfg.Inference.URL,
		"cors_origins", cfg.Server.CORSOrigins,
	)

	// 1. Clients
	inferenceClient := inference.NewClient(cfg.Inference.URL, cfg.Inference.Timeout)

	var sender report.ChatSender
	if cfg.Telegram.BotToken != "" {
		tg := telegram.NewClient(cfg.Telegram.BotToken)
		if cfg.Telegram.APIURL != "" {
			tg = tg.WithAPIURL(cfg.Telegram.APIURL)
		}
		sender = tg
	}
	if sender == nil || cfg.Telegram.ChatID == 0 {
		logger.Warn("Telegram sharing disabled: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set")
	}

	// 2. Services
	reportSvc := report.NewService(report.NewGenerator(cfg.Report.FontPaths...), sender, cfg.Telegram.ChatID, logger)
	predictionSvc := prediction.NewService(inferenceClient, logger)
	predictionHandler := prediction.NewHandler(predictionSvc, reportSvc, logger)

	doc, err := apidoc.Load(context.Background())
	if err != nil {
		logger.Error("Invalid OpenAPI document", "error", err)
		os.Exit(1)
	}
	specHandler, err := apidoc.Handler(doc)
	if err != nil {
		logger.Error("Failed to encode OpenAPI document", "error", err)
		os.Exit(1)
	}

	// 3. Router
	router := server.NewRouter(server.Deps{
		Prediction:  predictionHandler,
		OpenAPI:     specHandler,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(srv, cfg.Server.ShutdownTimeout, logger)
}

func waitForShutdown(srv *http.Server, timeout time.Duration, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("Server gracefully stopped")
}
