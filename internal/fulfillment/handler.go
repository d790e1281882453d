// Package fulfillment handles the Dialogflow fulfillment webhook, the
// alternate integration path where the agent itself asks this service
// for the response payload of a matched intent.
package fulfillment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/intents"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/metrics"
)

// Request is the inbound fulfillment webhook body.
type Request struct {
	ResponseID  string                 `json:"responseId,omitempty"`
	Session     string                 `json:"session,omitempty"`
	QueryResult dialogflow.QueryResult `json:"queryResult"`
}

// Response is the fulfillment webhook response body.
type Response struct {
	FulfillmentMessages []dialogflow.FulfillmentMessage `json:"fulfillmentMessages"`
}

// Handler handles Dialogflow fulfillment webhook calls.
type Handler struct {
	selector *intents.Selector
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewHandler creates a fulfillment handler.
func NewHandler(selector *intents.Selector, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		selector: selector,
		metrics:  m,
		log:      log.WithModule("fulfillment"),
	}
}

// Handle is the Gin handler for the fulfillment endpoint.
// Unrecognized intents and suppressed builders yield an empty JSON
// object, which tells Dialogflow to use its own configured response.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Failed to parse fulfillment body")
		h.metrics.RecordWebhook("fulfillment", "error", time.Since(start).Seconds())
		c.Status(http.StatusBadRequest)
		return
	}

	displayName := req.QueryResult.Intent.DisplayName
	intent := intents.Parse(displayName)

	log := h.log.WithField("intent", displayName)

	payloads := h.selector.Respond(intent, &req.QueryResult)
	if len(payloads) == 0 {
		log.Info("No custom payload for intent")
		h.metrics.RecordWebhook("fulfillment", "success", time.Since(start).Seconds())
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	messages := make([]dialogflow.FulfillmentMessage, len(payloads))
	for i, payload := range payloads {
		messages[i] = dialogflow.FulfillmentMessage{Payload: payload}
	}

	log.WithField("payload_count", len(messages)).Info("Fulfillment payload built")
	h.metrics.RecordWebhook("fulfillment", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, Response{FulfillmentMessages: messages})
}
