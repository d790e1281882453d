// Package dispatcher delivers reply payloads to a conversation, wrapped
// in typing-indicator events so the platform can animate the agent.
package dispatcher

import (
	"context"

	"github.com/google/uuid"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
)

// MessagingAPI is the subset of the Business Messages client the
// dispatcher needs. Satisfied by *bmapi.Client.
type MessagingAPI interface {
	CreateEvent(ctx context.Context, conversationID, eventType string) error
	CreateMessage(ctx context.Context, conversationID string, msg *bmapi.Message) error
}

// Dispatcher sends replies bracketed by typing events.
type Dispatcher struct {
	api MessagingAPI
	log *logger.Logger
}

// New creates a dispatcher on top of the messaging API client.
func New(api MessagingAPI, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		api: api,
		log: log.WithModule("dispatcher"),
	}
}

// Deliver sends, strictly in order: a typing-started event, the message,
// and a typing-stopped event. Every step is best effort: a failure is
// logged and the remaining steps still run, so a dropped typing event
// never swallows the reply itself.
func (d *Dispatcher) Deliver(ctx context.Context, conversationID string, msg *bmapi.Message) {
	log := d.log.WithConversation(conversationID)

	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	if msg.Representative == nil {
		msg.Representative = bmapi.BotRepresentative()
	}

	if err := d.api.CreateEvent(ctx, conversationID, bmapi.EventTypingStarted); err != nil {
		log.WithError(err).Error("Failed to send typing started event")
	}

	if err := d.api.CreateMessage(ctx, conversationID, msg); err != nil {
		log.WithError(err).WithField("message_id", msg.MessageID).Error("Failed to send reply message")
	}

	if err := d.api.CreateEvent(ctx, conversationID, bmapi.EventTypingStopped); err != nil {
		log.WithError(err).Error("Failed to send typing stopped event")
	}
}
