package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/logger"
)

// recordingAPI records the sequence of API calls.
type recordingAPI struct {
	calls        []string // "event:<type>" or "message"
	conversation string
	messages     []*bmapi.Message
	eventErr     error
	messageErr   error
}

func (r *recordingAPI) CreateEvent(_ context.Context, conversationID, eventType string) error {
	r.conversation = conversationID
	r.calls = append(r.calls, "event:"+eventType)
	return r.eventErr
}

func (r *recordingAPI) CreateMessage(_ context.Context, conversationID string, msg *bmapi.Message) error {
	r.conversation = conversationID
	r.calls = append(r.calls, "message")
	r.messages = append(r.messages, msg)
	return r.messageErr
}

func wantSequence() []string {
	return []string{
		"event:" + bmapi.EventTypingStarted,
		"message",
		"event:" + bmapi.EventTypingStopped,
	}
}

func checkSequence(t *testing.T, got []string) {
	t.Helper()
	want := wantSequence()
	if len(got) != len(want) {
		t.Fatalf("got %d calls %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestDeliverOrder verifies the typing-started event strictly precedes
// the message and typing-stopped strictly follows it.
func TestDeliverOrder(t *testing.T) {
	t.Parallel()
	api := &recordingAPI{}
	d := New(api, logger.New("error"))

	d.Deliver(context.Background(), "c1", &bmapi.Message{Text: "hello"})

	checkSequence(t, api.calls)
	if api.conversation != "c1" {
		t.Errorf("conversation = %q, want c1", api.conversation)
	}
}

// TestDeliverBestEffort verifies a failing step never aborts the
// remaining steps.
func TestDeliverBestEffort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		eventErr   error
		messageErr error
	}{
		{name: "event failures", eventErr: errors.New("event boom")},
		{name: "message failure", messageErr: errors.New("message boom")},
		{name: "all failures", eventErr: errors.New("event boom"), messageErr: errors.New("message boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &recordingAPI{eventErr: tt.eventErr, messageErr: tt.messageErr}
			d := New(api, logger.New("error"))

			d.Deliver(context.Background(), "c1", &bmapi.Message{Text: "hello"})

			checkSequence(t, api.calls)
		})
	}
}

// TestDeliverAssignsIdentity verifies a missing messageId and
// representative are filled in before sending.
func TestDeliverAssignsIdentity(t *testing.T) {
	t.Parallel()
	api := &recordingAPI{}
	d := New(api, logger.New("error"))

	d.Deliver(context.Background(), "c1", &bmapi.Message{Text: "first"})
	d.Deliver(context.Background(), "c1", &bmapi.Message{Text: "second"})

	if len(api.messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(api.messages))
	}
	first, second := api.messages[0], api.messages[1]
	if first.MessageID == "" || second.MessageID == "" {
		t.Fatal("messageId was not assigned")
	}
	if first.MessageID == second.MessageID {
		t.Errorf("messageId %q reused across replies", first.MessageID)
	}
	for i, msg := range api.messages {
		if msg.Representative == nil || msg.Representative.RepresentativeType != bmapi.RepresentativeBot {
			t.Errorf("message %d missing BOT representative: %+v", i, msg.Representative)
		}
	}
}

// TestDeliverKeepsCallerMessageID verifies a caller-provided messageId
// is preserved.
func TestDeliverKeepsCallerMessageID(t *testing.T) {
	t.Parallel()
	api := &recordingAPI{}
	d := New(api, logger.New("error"))

	d.Deliver(context.Background(), "c1", &bmapi.Message{MessageID: "fixed-id", Text: "hello"})

	if len(api.messages) != 1 || api.messages[0].MessageID != "fixed-id" {
		t.Fatalf("caller messageId not preserved: %+v", api.messages)
	}
}
