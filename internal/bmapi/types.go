// Package bmapi provides a client and payload types for the Google
// Business Messages conversations API. Payload structs mirror the wire
// JSON for conversation messages and events.
package bmapi

// Representative types and event types accepted by the API.
const (
	RepresentativeBot = "BOT"

	EventTypingStarted = "TYPING_STARTED"
	EventTypingStopped = "TYPING_STOPPED"
)

// PostbackIgnore marks a suggestion as informational only.
// The webhook must never start an intent-detection round for it.
const PostbackIgnore = "ignore"

// Card layout constants.
const (
	CardWidthMedium   = "MEDIUM"
	MediaHeightMedium = "MEDIUM"
)

// Message is a conversation message payload.
// At most one of Text / RichCard carries the primary content.
type Message struct {
	MessageID      string          `json:"messageId,omitempty"`
	Representative *Representative `json:"representative,omitempty"`
	Text           string          `json:"text,omitempty"`
	Fallback       string          `json:"fallback,omitempty"`
	RichCard       *RichCard       `json:"richCard,omitempty"`
	Suggestions    []Suggestion    `json:"suggestions,omitempty"`
}

// Representative identifies the sender of a message or event.
type Representative struct {
	RepresentativeType string `json:"representativeType"`
}

// Event is a conversation event payload (typing indicators).
type Event struct {
	EventType      string          `json:"eventType"`
	Representative *Representative `json:"representative,omitempty"`
}

// Suggestion is either a reply chip or an action chip.
type Suggestion struct {
	Reply  *SuggestedReply  `json:"reply,omitempty"`
	Action *SuggestedAction `json:"action,omitempty"`
}

// SuggestedReply is a chip that echoes its postback data when tapped.
type SuggestedReply struct {
	Text         string `json:"text"`
	PostbackData string `json:"postbackData"`
}

// SuggestedAction is a chip that triggers an action, such as opening a URL.
type SuggestedAction struct {
	Text          string         `json:"text"`
	PostbackData  string         `json:"postbackData"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

// OpenURLAction opens the given URL on the consumer device.
type OpenURLAction struct {
	URL string `json:"url"`
}

// RichCard wraps either a standalone card or a carousel.
type RichCard struct {
	StandaloneCard *StandaloneCard `json:"standaloneCard,omitempty"`
	CarouselCard   *CarouselCard   `json:"carouselCard,omitempty"`
}

// StandaloneCard is a single rich card.
type StandaloneCard struct {
	CardContent *CardContent `json:"cardContent,omitempty"`
}

// CarouselCard is a horizontally scrollable list of cards.
type CarouselCard struct {
	CardWidth    string        `json:"cardWidth,omitempty"`
	CardContents []CardContent `json:"cardContents"`
}

// CardContent is the content of one card.
type CardContent struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Media       *Media       `json:"media,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Media is an image attached to a card.
type Media struct {
	Height      string       `json:"height,omitempty"`
	ContentInfo *ContentInfo `json:"contentInfo,omitempty"`
}

// ContentInfo points at the media file.
type ContentInfo struct {
	FileURL      string `json:"fileUrl"`
	ForceRefresh bool   `json:"forceRefresh"`
}

// NewReply builds a reply chip suggestion.
func NewReply(text, postbackData string) Suggestion {
	return Suggestion{Reply: &SuggestedReply{Text: text, PostbackData: postbackData}}
}

// NewURLAction builds an open-URL action chip suggestion.
func NewURLAction(text, postbackData, url string) Suggestion {
	return Suggestion{Action: &SuggestedAction{
		Text:          text,
		PostbackData:  postbackData,
		OpenURLAction: &OpenURLAction{URL: url},
	}}
}

// BotRepresentative returns the fixed bot sender tag.
func BotRepresentative() *Representative {
	return &Representative{RepresentativeType: RepresentativeBot}
}
