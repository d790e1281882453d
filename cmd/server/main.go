// Package main provides the Business Messages bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/config"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dispatcher"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/fulfillment"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/gauth"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/intents"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/metrics"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/sentry"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Business Messages bot server")

	// Initialize error tracking (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
		defer sentry.Flush(2 * time.Second)
	}

	// Create Prometheus registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Credential providers, one per external API scope.
	// Tokens are acquired lazily on first use and cached for the process.
	dfAuth := gauth.New(cfg.DFCredentialsPath, dialogflow.Scope)
	bmAuth := gauth.New(cfg.BMCredentialsPath, bmapi.Scope)

	// Dialogflow intent detector
	detector := dialogflow.NewClient(
		cfg.DialogflowBaseURL,
		cfg.LanguageCode,
		cfg.DFProjectID,
		cfg.APITimeout,
		dfAuth,
		m,
		log,
	)

	// Business Messages client and dispatcher
	bmClient := bmapi.NewClient(cfg.BMBaseURL, cfg.APITimeout, bmAuth, m, log)
	messageDispatcher := dispatcher.New(bmClient, log)

	// Response selector for the fulfillment path
	selector, err := intents.NewSelector(cfg.TimezoneOffset, log)
	if err != nil {
		log.Fatal("Failed to create response selector", "error", err)
	}

	// Webhook handlers
	webhookHandler := webhook.NewHandler(detector, messageDispatcher, m, log)
	fulfillmentHandler := fulfillment.NewHandler(selector, m, log)
	log.Info("Webhook handlers created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, webhookHandler, fulfillmentHandler, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Drain in-flight webhook event processing first so accepted events
	// still get their reply.
	if err := webhookHandler.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timed out waiting for in-flight events")
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
