package intents

import (
	"testing"

	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
)

func newTestSelector(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector("-06:00", logger.New("error"))
	if err != nil {
		t.Fatalf("NewSelector failed: %v", err)
	}
	return s
}

// completeQueryResult returns a query result that satisfies every
// builder, including the appointment follow-up.
func completeQueryResult() *dialogflow.QueryResult {
	return &dialogflow.QueryResult{
		Parameters: dialogflow.Parameters{
			"date":            "2023-06-01T12:00:00-06:00",
			"time":            "2023-06-01T14:00:00-06:00",
			"AppointmentType": "tune-up",
		},
		OutputContexts: []dialogflow.Context{{
			Name: "projects/test/agent/sessions/c1/contexts/makeappointment-followup",
			Parameters: dialogflow.Parameters{
				"date": "2023-06-01T12:00:00-06:00",
				"time": "2023-06-01T14:00:00-06:00",
			},
		}},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		displayName string
		want        Intent
	}{
		{"Default Welcome Intent", IntentWelcome},
		{"Good Bye / Thanks", IntentGoodbye},
		{"Hours", IntentHours},
		{"Location", IntentLocation},
		{"Menu", IntentMenu},
		{"Make Appointment", IntentMakeAppointment},
		{"Make Appointment - custom", IntentAppointmentFollowUp},
		{"Something Else", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tt := range tests {
		if got := Parse(tt.displayName); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.displayName, got, tt.want)
		}
	}
}

// TestRespondAllRecognizedIntents verifies every recognized intent has a
// builder producing a structurally valid, non-empty payload.
func TestRespondAllRecognizedIntents(t *testing.T) {
	t.Parallel()
	s := newTestSelector(t)
	qr := completeQueryResult()

	for _, intent := range Recognized() {
		payloads := s.Respond(intent, qr)
		if len(payloads) == 0 {
			t.Errorf("Respond(%v) returned no payloads", intent)
			continue
		}

		for i, msg := range payloads {
			if msg.Text == "" && msg.RichCard == nil {
				t.Errorf("Respond(%v) payload %d has neither text nor rich card", intent, i)
			}
			if msg.Text != "" && msg.RichCard != nil {
				t.Errorf("Respond(%v) payload %d has both text and rich card", intent, i)
			}
			for j, sug := range msg.Suggestions {
				if (sug.Reply == nil) == (sug.Action == nil) {
					t.Errorf("Respond(%v) payload %d suggestion %d is not exactly one of reply/action", intent, i, j)
				}
			}
		}
	}
}

func TestRespondUnknownIntent(t *testing.T) {
	t.Parallel()
	s := newTestSelector(t)

	if payloads := s.Respond(IntentUnknown, &dialogflow.QueryResult{}); payloads != nil {
		t.Errorf("Respond(IntentUnknown) = %v, want nil", payloads)
	}
}

func TestWelcomeSuggestions(t *testing.T) {
	t.Parallel()
	s := newTestSelector(t)

	payloads := s.Respond(IntentWelcome, &dialogflow.QueryResult{})
	if len(payloads) != 1 {
		t.Fatalf("welcome returned %d payloads, want 1", len(payloads))
	}

	want := []string{"Book an appointment", "What are your hours?", "Where are you located?"}
	got := payloads[0].Suggestions
	if len(got) != len(want) {
		t.Fatalf("welcome has %d suggestions, want %d", len(got), len(want))
	}
	for i, text := range want {
		if got[i].Reply == nil || got[i].Reply.Text != text {
			t.Errorf("welcome suggestion %d = %+v, want reply %q", i, got[i], text)
		}
	}
}

func TestLocationResponseShape(t *testing.T) {
	t.Parallel()
	s := newTestSelector(t)

	payloads := s.Respond(IntentLocation, &dialogflow.QueryResult{})
	if len(payloads) != 2 {
		t.Fatalf("location returned %d payloads, want 2 (intro text + carousel)", len(payloads))
	}

	if payloads[0].Text == "" {
		t.Error("location intro payload has no text")
	}

	carousel := payloads[1].RichCard
	if carousel == nil || carousel.CarouselCard == nil {
		t.Fatal("location second payload is not a carousel")
	}
	if n := len(carousel.CarouselCard.CardContents); n != 3 {
		t.Fatalf("location carousel has %d cards, want 3", n)
	}

	// The See-details actions are informational only: tapping one must
	// never start a new intent-detection round.
	for i, card := range carousel.CarouselCard.CardContents {
		if len(card.Suggestions) != 1 || card.Suggestions[0].Action == nil {
			t.Errorf("card %d does not have exactly one action suggestion", i)
			continue
		}
		action := card.Suggestions[0].Action
		if action.PostbackData != bmapi.PostbackIgnore {
			t.Errorf("card %d action postback = %q, want %q", i, action.PostbackData, bmapi.PostbackIgnore)
		}
		if action.OpenURLAction == nil || action.OpenURLAction.URL == "" {
			t.Errorf("card %d action has no URL", i)
		}
	}
}
