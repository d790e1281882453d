package bmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/gauth"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/metrics"
)

// Scope is the OAuth permission scope for the Business Messages API.
const Scope = "https://www.googleapis.com/auth/businessmessages"

// Client calls the Business Messages conversations API.
type Client struct {
	baseURL string
	http    *http.Client
	auth    *gauth.Provider
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewClient creates a Business Messages API client.
func NewClient(baseURL string, timeout time.Duration, auth *gauth.Provider, m *metrics.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		auth:    auth,
		metrics: m,
		log:     log.WithModule("bmapi"),
	}
}

// CreateEvent creates a conversation event (typing indicator) with a
// freshly generated event ID.
func (c *Client) CreateEvent(ctx context.Context, conversationID, eventType string) error {
	eventID := uuid.NewString()
	endpoint := fmt.Sprintf("%s/v1/conversations/%s/events?eventId=%s",
		c.baseURL, url.PathEscape(conversationID), url.QueryEscape(eventID))

	event := &Event{
		EventType:      eventType,
		Representative: BotRepresentative(),
	}

	if err := c.post(ctx, endpoint, event); err != nil {
		c.metrics.RecordMessagingCall("event", "error")
		return fmt.Errorf("create %s event: %w", eventType, err)
	}

	c.metrics.RecordMessagingCall("event", "success")
	c.log.WithConversation(conversationID).
		WithField("event_type", eventType).
		WithField("event_id", eventID).
		Debug("Conversation event created")
	return nil
}

// CreateMessage creates a conversation message.
// The caller is responsible for setting MessageID and Representative.
func (c *Client) CreateMessage(ctx context.Context, conversationID string, msg *Message) error {
	endpoint := fmt.Sprintf("%s/v1/conversations/%s/messages",
		c.baseURL, url.PathEscape(conversationID))

	if err := c.post(ctx, endpoint, msg); err != nil {
		c.metrics.RecordMessagingCall("message", "error")
		return fmt.Errorf("create message: %w", err)
	}

	c.metrics.RecordMessagingCall("message", "success")
	c.log.WithConversation(conversationID).
		WithField("message_id", msg.MessageID).
		Debug("Conversation message created")
	return nil
}

// post sends an authenticated JSON POST and checks for a 2xx response.
func (c *Client) post(ctx context.Context, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.auth.SetAuthHeader(ctx, req); err != nil {
		return fmt.Errorf("authorize request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("business messages API responded with %d: %s", resp.StatusCode, detail)
	}

	return nil
}
