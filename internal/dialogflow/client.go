package dialogflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/seansbikeshop/bm-dialogflow-bot/internal/gauth"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/metrics"
)

// Scope is the OAuth permission scope for the Dialogflow API.
const Scope = "https://www.googleapis.com/auth/dialogflow"

// Client calls the Dialogflow ES detectIntent API for one agent project.
// The conversation ID doubles as the Dialogflow session key so the agent
// tracks multi-turn context per consumer.
type Client struct {
	baseURL      string
	languageCode string
	projectID    string // optional override; resolved from the key file when empty
	http         *http.Client
	auth         *gauth.Provider
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewClient creates a Dialogflow client.
// projectID may be empty, in which case the project_id from the service
// account key file is used.
func NewClient(baseURL, languageCode, projectID string, timeout time.Duration, auth *gauth.Provider, m *metrics.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		languageCode: languageCode,
		projectID:    projectID,
		http:         &http.Client{Timeout: timeout},
		auth:         auth,
		metrics:      m,
		log:          log.WithModule("dialogflow"),
	}
}

// DetectIntent sends the user text to the agent and returns the parsed
// query result. The conversationID addresses the Dialogflow session.
func (c *Client) DetectIntent(ctx context.Context, text, conversationID string) (*QueryResult, error) {
	start := time.Now()

	result, err := c.detectIntent(ctx, text, conversationID)
	duration := time.Since(start).Seconds()

	if err != nil {
		c.metrics.RecordIntentDetection("", "error", duration)
		return nil, err
	}

	c.metrics.RecordIntentDetection(result.Intent.DisplayName, "success", duration)
	c.log.WithConversation(conversationID).
		WithField("intent", result.Intent.DisplayName).
		WithField("query_text", result.QueryText).
		Info("Intent detected")
	return result, nil
}

func (c *Client) detectIntent(ctx context.Context, text, conversationID string) (*QueryResult, error) {
	projectID := c.projectID
	if projectID == "" {
		resolved, err := c.auth.ProjectID(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve project id: %w", err)
		}
		projectID = resolved
	}
	if projectID == "" {
		return nil, fmt.Errorf("dialogflow project id is not configured")
	}

	endpoint := fmt.Sprintf("%s/v2/projects/%s/agent/sessions/%s:detectIntent",
		c.baseURL, url.PathEscape(projectID), url.PathEscape(conversationID))

	body, err := json.Marshal(detectIntentRequest{
		QueryInput: queryInput{
			Text: textInput{
				Text:         text,
				LanguageCode: c.languageCode,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal detectIntent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create detectIntent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.auth.SetAuthHeader(ctx, req); err != nil {
		return nil, fmt.Errorf("authorize detectIntent request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send detectIntent request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("dialogflow responded with %d: %s", resp.StatusCode, detail)
	}

	var parsed detectIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode detectIntent response: %w", err)
	}
	if parsed.QueryResult == nil {
		return nil, fmt.Errorf("detectIntent response has no query result")
	}

	return parsed.QueryResult, nil
}
