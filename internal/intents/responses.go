package intents

import (
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
)

// Location detail URLs for the three shops.
const (
	mountainViewMapsURL = "https://www.google.com/maps/place/Googleplex/@37.4220041,-122.0862515,17z/data=!3m1!4b1!4m5!3m4!1s0x808fba02425dad8f:0x6c296c66619367e0!8m2!3d37.4219999!4d-122.0840575"
	sanFranciscoMapsURL = "https://www.google.com/maps/place/Google+San+Francisco/@37.7896862,-122.3923026,17z/data=!3m1!4b1!4m5!3m4!1s0x8085806415f06bdf:0xf048a8b5bd7b0cf3!8m2!3d37.789682!4d-122.3901086"
	sanBrunoMapsURL     = "https://www.google.com/maps/place/YouTube+San+Bruno,+1000+Cherry+Ave,+San+Bruno,+CA+94066/@37.6292889,-122.4299609,16z/data=!4m5!3m4!1s0x808f79e84bcef1e9:0xd9997ba77f204b56!8m2!3d37.6292847!4d-122.4255782"
)

// mainSuggestions are the three navigation chips offered after most replies.
func mainSuggestions() []bmapi.Suggestion {
	return []bmapi.Suggestion{
		bmapi.NewReply("Book an appointment", "I want to book an appointment"),
		bmapi.NewReply("What are your hours?", "What are your hours?"),
		bmapi.NewReply("Where are you located?", "Where are you located?"),
	}
}

// welcomeResponse greets the consumer by first name.
// The {name} placeholder is substituted at delivery time.
func welcomeResponse() []*bmapi.Message {
	return []*bmapi.Message{{
		Text: "Hi {name}, welcome to Sean's Bike Shop!\n\nI'm Sean's digital assistant " +
			"and I can help you book an appointment for a bike service or tune-up. " +
			"Please let me know how I can help.",
		Suggestions: mainSuggestions(),
	}}
}

func goodbyeResponse() []*bmapi.Message {
	return []*bmapi.Message{{
		Text:        "Thanks {name} for using Sean's Bike Shop! Let me know if there's anything else I can help with.",
		Suggestions: mainSuggestions(),
	}}
}

func hoursResponse() []*bmapi.Message {
	return []*bmapi.Message{{
		Text: "We're open Monday through Friday from 9am to 5:30pm.",
		Suggestions: []bmapi.Suggestion{
			bmapi.NewReply("Book an appointment", "I want to book an appointment"),
			bmapi.NewReply("Where are you located?", "Where are you located?"),
		},
	}}
}

func menuResponse() []*bmapi.Message {
	return []*bmapi.Message{{
		Text:        "No problem at all, happy to help. Please let me know what I can do?",
		Suggestions: mainSuggestions(),
	}}
}

// locationResponse sends an intro text message followed by a carousel of
// the three locations. The "See details" actions carry the ignore
// postback so tapping them never starts a new intent-detection round.
func locationResponse() []*bmapi.Message {
	intro := &bmapi.Message{
		Text: "We currently have three locations in the Bay Area.",
	}

	carousel := &bmapi.Message{
		RichCard: &bmapi.RichCard{
			CarouselCard: &bmapi.CarouselCard{
				CardWidth: bmapi.CardWidthMedium,
				CardContents: []bmapi.CardContent{
					locationCard("Sean's Mountain View location",
						"https://storage.googleapis.com/sample-logos/googleplex.png",
						mountainViewMapsURL),
					locationCard("Sean's San Francisco location",
						"https://storage.googleapis.com/sample-logos/sf-office.png",
						sanFranciscoMapsURL),
					locationCard("Sean's San Bruno location",
						"https://storage.googleapis.com/sample-logos/youtube.png",
						sanBrunoMapsURL),
				},
			},
		},
		Suggestions: mainSuggestions(),
	}

	return []*bmapi.Message{intro, carousel}
}

func locationCard(title, imageURL, mapsURL string) bmapi.CardContent {
	return bmapi.CardContent{
		Title: title,
		Media: &bmapi.Media{
			Height: bmapi.MediaHeightMedium,
			ContentInfo: &bmapi.ContentInfo{
				FileURL:      imageURL,
				ForceRefresh: false,
			},
		},
		Suggestions: []bmapi.Suggestion{
			bmapi.NewURLAction("See details", bmapi.PostbackIgnore, mapsURL),
		},
	}
}
