package webhook

import "testing"

func boolP(v bool) *bool { return &v }

func TestFirstName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		displayName string
		want        string
	}{
		{"Jane Doe", "Jane"},
		{"Madonna", "Madonna"},
		{"", ""},
		{"Mary Jane Watson", "Mary"},
		{" Leading", ""},
	}

	for _, tt := range tests {
		if got := FirstName(tt.displayName); got != tt.want {
			t.Errorf("FirstName(%q) = %q, want %q", tt.displayName, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		req  InboundRequest
		want Event
	}{
		{
			name: "text message",
			req: InboundRequest{
				ConversationID: "c1",
				Context:        &RequestContext{UserInfo: &UserInfo{DisplayName: "Jane Doe"}},
				Message:        &InboundMessage{Text: "hi"},
			},
			want: Event{Type: EventTextMessage, ConversationID: "c1", DisplayName: "Jane Doe", Text: "hi"},
		},
		{
			name: "suggestion reply",
			req: InboundRequest{
				ConversationID:     "c2",
				SuggestionResponse: &SuggestionResponse{Text: "Repair", PostbackData: "repair"},
			},
			want: Event{Type: EventSuggestionReply, ConversationID: "c2", Text: "Repair", PostbackData: "repair"},
		},
		{
			name: "typing status",
			req: InboundRequest{
				ConversationID: "c3",
				UserStatus:     &UserStatus{IsTyping: boolP(true)},
			},
			want: Event{Type: EventTypingStatus, ConversationID: "c3", IsTyping: true},
		},
		{
			name: "live agent request",
			req: InboundRequest{
				ConversationID: "c4",
				UserStatus:     &UserStatus{RequestedLiveAgent: boolP(true)},
			},
			want: Event{Type: EventLiveAgentRequest, ConversationID: "c4"},
		},
		{
			name: "missing display name",
			req: InboundRequest{
				ConversationID: "c5",
				Message:        &InboundMessage{Text: "hello"},
			},
			want: Event{Type: EventTextMessage, ConversationID: "c5", Text: "hello"},
		},
		{
			name: "empty body",
			req:  InboundRequest{ConversationID: "c6"},
			want: Event{Type: EventUnknown, ConversationID: "c6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(&tt.req); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
