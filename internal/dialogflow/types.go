// Package dialogflow provides a client and wire types for the
// Dialogflow ES detectIntent API and its fulfillment webhook protocol.
package dialogflow

import (
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
)

// Intent identifies the matched Dialogflow intent.
type Intent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Parameters holds extracted intent parameters.
// Dialogflow encodes them as a loosely typed struct.
type Parameters map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (p Parameters) String(key string) string {
	v, _ := p[key].(string)
	return v
}

// Context is an active conversation context carrying parameters across
// turns of a multi-step flow.
type Context struct {
	Name       string     `json:"name,omitempty"`
	Parameters Parameters `json:"parameters,omitempty"`
}

// FulfillmentMessage is one response message produced by fulfillment.
// Only custom payload messages are meaningful to this bot; they carry a
// Business Messages-shaped object.
type FulfillmentMessage struct {
	Payload *bmapi.Message `json:"payload,omitempty"`
}

// QueryResult is the result of one detectIntent round, and also the
// body of an inbound fulfillment webhook call.
type QueryResult struct {
	QueryText           string               `json:"queryText,omitempty"`
	Parameters          Parameters           `json:"parameters,omitempty"`
	FulfillmentText     string               `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages,omitempty"`
	Intent              Intent               `json:"intent,omitempty"`
	OutputContexts      []Context            `json:"outputContexts,omitempty"`
}

// detectIntentRequest is the outbound detectIntent request body.
type detectIntentRequest struct {
	QueryInput queryInput `json:"queryInput"`
}

type queryInput struct {
	Text textInput `json:"text"`
}

type textInput struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// detectIntentResponse is the outbound detectIntent response body.
type detectIntentResponse struct {
	ResponseID  string       `json:"responseId,omitempty"`
	QueryResult *QueryResult `json:"queryResult,omitempty"`
}
