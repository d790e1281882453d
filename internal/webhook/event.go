package webhook

import "strings"

// InboundRequest mirrors the JSON body of a Business Messages webhook
// delivery. Exactly one of Message, SuggestionResponse, UserStatus is
// expected to be present.
type InboundRequest struct {
	ConversationID     string              `json:"conversationId"`
	Context            *RequestContext     `json:"context,omitempty"`
	Message            *InboundMessage     `json:"message,omitempty"`
	SuggestionResponse *SuggestionResponse `json:"suggestionResponse,omitempty"`
	UserStatus         *UserStatus         `json:"userStatus,omitempty"`
}

// RequestContext carries consumer metadata attached to the delivery.
type RequestContext struct {
	UserInfo *UserInfo `json:"userInfo,omitempty"`
}

// UserInfo identifies the consumer.
type UserInfo struct {
	DisplayName string `json:"displayName,omitempty"`
}

// InboundMessage is a free-text consumer message.
type InboundMessage struct {
	Name      string `json:"name,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Text      string `json:"text,omitempty"`
}

// SuggestionResponse is the echo of a tapped suggestion chip.
type SuggestionResponse struct {
	Text         string `json:"text,omitempty"`
	PostbackData string `json:"postbackData,omitempty"`
}

// UserStatus signals typing activity or a live-agent request.
type UserStatus struct {
	IsTyping           *bool `json:"isTyping,omitempty"`
	RequestedLiveAgent *bool `json:"requestedLiveAgent,omitempty"`
}

// EventType classifies an inbound webhook delivery.
type EventType int

const (
	// EventUnknown is a delivery carrying none of the expected fields.
	EventUnknown EventType = iota
	// EventTextMessage is a free-text consumer message.
	EventTextMessage
	// EventSuggestionReply is a tapped suggestion chip.
	EventSuggestionReply
	// EventTypingStatus reports the consumer typing state.
	EventTypingStatus
	// EventLiveAgentRequest asks for a transfer to a human.
	EventLiveAgentRequest
)

// String returns the metric label for the event type.
func (t EventType) String() string {
	switch t {
	case EventTextMessage:
		return "message"
	case EventSuggestionReply:
		return "suggestion"
	case EventTypingStatus:
		return "typing"
	case EventLiveAgentRequest:
		return "live_agent"
	default:
		return "unknown"
	}
}

// Event is one classified inbound delivery.
// Discarded after handling; nothing persists between deliveries.
type Event struct {
	Type           EventType
	ConversationID string
	DisplayName    string

	// Text is the message text for EventTextMessage and the chip display
	// text for EventSuggestionReply.
	Text string

	// PostbackData is set for EventSuggestionReply only.
	PostbackData string

	// IsTyping is set for EventTypingStatus only.
	IsTyping bool
}

// Classify folds an inbound request into one Event variant.
func Classify(req *InboundRequest) Event {
	event := Event{
		Type:           EventUnknown,
		ConversationID: req.ConversationID,
	}
	if req.Context != nil && req.Context.UserInfo != nil {
		event.DisplayName = req.Context.UserInfo.DisplayName
	}

	switch {
	case req.Message != nil && req.Message.Text != "":
		event.Type = EventTextMessage
		event.Text = req.Message.Text
	case req.SuggestionResponse != nil:
		event.Type = EventSuggestionReply
		event.Text = req.SuggestionResponse.Text
		event.PostbackData = req.SuggestionResponse.PostbackData
	case req.UserStatus != nil && req.UserStatus.IsTyping != nil:
		event.Type = EventTypingStatus
		event.IsTyping = *req.UserStatus.IsTyping
	case req.UserStatus != nil && req.UserStatus.RequestedLiveAgent != nil:
		event.Type = EventLiveAgentRequest
	}

	return event
}

// FirstName returns the consumer's first name: the display name up to
// the first space, or the whole string when there is none. An empty
// display name yields an empty first name, which downstream templating
// must tolerate.
func FirstName(displayName string) string {
	if i := strings.Index(displayName, " "); i >= 0 {
		return displayName[:i]
	}
	return displayName
}
