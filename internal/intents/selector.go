package intents

import (
	"fmt"

	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/config"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
)

// Selector selects and builds reply payloads for recognized intents.
// Builders are deterministic given the query result; the only state is
// the fixed business timezone offset used by the appointment flow.
type Selector struct {
	offsetHours   int
	offsetMinutes int
	log           *logger.Logger
}

// NewSelector creates a selector with the business UTC offset, e.g. "-06:00".
func NewSelector(timezoneOffset string, log *logger.Logger) (*Selector, error) {
	hours, minutes, err := config.ParseOffset(timezoneOffset)
	if err != nil {
		return nil, fmt.Errorf("parse timezone offset: %w", err)
	}
	return &Selector{
		offsetHours:   hours,
		offsetMinutes: minutes,
		log:           log.WithModule("intents"),
	}, nil
}

// Respond builds the reply payloads for the intent, in delivery order.
// A nil result is a valid terminal outcome: it means the intent has no
// dedicated builder, or the builder suppressed its output because the
// query result was structurally incomplete.
func (s *Selector) Respond(intent Intent, qr *dialogflow.QueryResult) []*bmapi.Message {
	switch intent {
	case IntentWelcome:
		return welcomeResponse()
	case IntentGoodbye:
		return goodbyeResponse()
	case IntentHours:
		return hoursResponse()
	case IntentLocation:
		return locationResponse()
	case IntentMenu:
		return menuResponse()
	case IntentMakeAppointment:
		return s.makeAppointmentResponse(qr)
	case IntentAppointmentFollowUp:
		return s.appointmentFollowUpResponse(qr)
	case IntentUnknown:
		return nil
	default:
		return nil
	}
}
