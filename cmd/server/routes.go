// Package main provides the Business Messages bot server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/fulfillment"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, webhookHandler *webhook.Handler, fulfillmentHandler *fulfillment.Handler, registry *prometheus.Registry) {
	// Root endpoint - agent entry point info page
	rootHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "Sean's Bike Shop Business Messages agent")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only checks that the process is serving
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - the service is stateless, so readiness equals
	// liveness; credentials are acquired lazily on first webhook.
	router.GET("/ready", healthHandler)
	router.HEAD("/ready", healthHandler)

	// Business Messages webhook callback endpoint
	router.POST("/callback", webhookHandler.Handle)

	// Dialogflow fulfillment webhook endpoint
	router.POST("/dfCallback", fulfillmentHandler.Handle)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
