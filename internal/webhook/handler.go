// Package webhook handles inbound Business Messages webhook deliveries
// and drives the intent-detection and reply pipeline.
//
// The contract with the platform is ack-then-best-effort: every
// delivery is acknowledged with 200 immediately after classification,
// and all downstream failures (auth, Dialogflow, messaging API) are
// logged and swallowed. User-visible failure is a missing reply, never
// an error message.
package webhook

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/metrics"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/sentry"
)

// IntentDetector detects the intent of a consumer message.
// Satisfied by *dialogflow.Client.
type IntentDetector interface {
	DetectIntent(ctx context.Context, text, conversationID string) (*dialogflow.QueryResult, error)
}

// Dispatcher delivers a reply payload to a conversation.
// Satisfied by *dispatcher.Dispatcher.
type Dispatcher interface {
	Deliver(ctx context.Context, conversationID string, msg *bmapi.Message)
}

// Handler handles Business Messages webhook deliveries.
type Handler struct {
	detector   IntentDetector
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	log        *logger.Logger
	wg         sync.WaitGroup
}

// NewHandler creates a webhook handler.
func NewHandler(detector IntentDetector, dispatcher Dispatcher, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		detector:   detector,
		dispatcher: dispatcher,
		metrics:    m,
		log:        log.WithModule("webhook"),
	}
}

// Handle is the Gin handler for the webhook endpoint.
func (h *Handler) Handle(c *gin.Context) {
	var req InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Failed to parse webhook body")
		c.Status(http.StatusBadRequest)
		return
	}

	event := Classify(&req)

	// Acknowledge immediately; the platform expects a prompt 200
	// independent of downstream completion.
	c.Status(http.StatusOK)

	start := time.Now()
	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.WithField("panic", r).Error("Panic in async event processing")
			}
		}()
		h.processEvent(context.Background(), event, start)
	})
}

// processEvent handles a single classified event asynchronously.
func (h *Handler) processEvent(ctx context.Context, event Event, start time.Time) {
	log := h.log.WithConversation(event.ConversationID)
	status := "success"

	switch event.Type {
	case EventTextMessage:
		log.WithField("text", event.Text).Info("Consumer message received")
		if !h.respond(ctx, event.Text, event.ConversationID, FirstName(event.DisplayName)) {
			status = "error"
		}
	case EventSuggestionReply:
		if event.PostbackData == bmapi.PostbackIgnore {
			log.Debug("Informational suggestion tapped, no reply needed")
			break
		}
		log.WithField("postback", event.PostbackData).Info("Suggestion reply received")
		if !h.respond(ctx, event.PostbackData, event.ConversationID, FirstName(event.DisplayName)) {
			status = "error"
		}
	case EventTypingStatus:
		log.WithField("is_typing", event.IsTyping).Info("Consumer typing status changed")
	case EventLiveAgentRequest:
		log.Info("Consumer requested transfer to live agent")
	case EventUnknown:
		log.Warn("Webhook delivery with no recognizable payload")
	}

	h.metrics.RecordWebhook(event.Type.String(), status, time.Since(start).Seconds())
}

// respond runs the messaging pipeline for one consumer utterance:
// detect the intent, pick the reply payloads, and dispatch them.
// Returns false when the pipeline was abandoned.
func (h *Handler) respond(ctx context.Context, text, conversationID, firstName string) bool {
	log := h.log.WithConversation(conversationID)

	result, err := h.detector.DetectIntent(ctx, text, conversationID)
	if err != nil {
		log.WithError(err).Error("Intent detection failed, abandoning reply")
		sentry.CaptureException(err)
		return false
	}

	for _, msg := range replyPayloads(result) {
		msg.Text = substituteName(msg.Text, firstName)
		if msg.Fallback == "" {
			msg.Fallback = result.FulfillmentText
		}
		msg.MessageID = uuid.NewString()
		msg.Representative = bmapi.BotRepresentative()

		h.dispatcher.Deliver(ctx, conversationID, msg)
	}

	return true
}

// replyPayloads extracts the custom fulfillment payloads in order, or
// falls back to a plain text message built from the fulfillment text.
func replyPayloads(result *dialogflow.QueryResult) []*bmapi.Message {
	var payloads []*bmapi.Message
	for _, fm := range result.FulfillmentMessages {
		if fm.Payload != nil {
			payloads = append(payloads, fm.Payload)
		}
	}
	if len(payloads) == 0 {
		payloads = append(payloads, &bmapi.Message{Text: result.FulfillmentText})
	}
	return payloads
}

// substituteName fills the {name} placeholder with the consumer's first
// name. The first name may be empty; the placeholder is replaced either way.
func substituteName(text, firstName string) string {
	return strings.Replace(text, "{name}", firstName, 1)
}

// Shutdown waits for in-flight async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
