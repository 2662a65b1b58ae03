package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/config"
	"github.com/nordbooks/leadtrack/db"
	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/middleware"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	defer logger.Sync()

	logger.Info("starting leadtrack",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.Addr),
	)

	m := metrics.New("leadtrack")

	// store initialization
	leadStore, err := store.Open(cfg.DataDir, cfg.EventFlushEvery, m, logger)
	if err != nil {
		logger.Fatal("opening store failed", zap.Error(err))
	}

	geoipDB, err := db.CreateGeoIPConnection(cfg.GeoIPPath)
	if err != nil {
		logger.Warn("GeoIP database not available, lead geo enrichment disabled", zap.Error(err))
	}
	if geoipDB != nil {
		defer geoipDB.Close()
	}

	var mailer *utils.Mailer
	if cfg.SMTP.Enabled() {
		mailer = utils.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password, cfg.SMTP.To)
		logger.Info("lead notifications enabled", zap.String("to", cfg.SMTP.To))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, m, logger)

	// router
	router := SetupRouter(&Deps{
		Config:  cfg,
		Store:   leadStore,
		Logger:  logger,
		Metrics: m,
		GeoIP:   geoipDB,
		Limiter: limiter,
		Mailer:  mailer,
	})

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: handlers.CORS( // cors config
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain requests and flush the record logs.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := leadStore.Close(); err != nil {
		logger.Error("closing store failed", zap.Error(err))
	}
}

func setupLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
