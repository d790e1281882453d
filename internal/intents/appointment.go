package intents

import (
	"fmt"
	"time"

	"github.com/seansbikeshop/bm-dialogflow-bot/internal/bmapi"
	"github.com/seansbikeshop/bm-dialogflow-bot/internal/dialogflow"
)

const (
	paramDate            = "date"
	paramTime            = "time"
	paramAppointmentType = "AppointmentType"

	appointmentDuration = 30 * time.Minute

	// calendarTimeFormat is the Google Calendar render URL time format.
	calendarTimeFormat = "20060102T150405"
)

// makeAppointmentResponse prompts for whichever of date and time is
// still missing, or confirms and asks for the appointment type once
// both have been collected.
func (s *Selector) makeAppointmentResponse(qr *dialogflow.QueryResult) []*bmapi.Message {
	gotDate := qr.Parameters.String(paramDate) != ""
	gotTime := qr.Parameters.String(paramTime) != ""

	var text string
	var suggestions []bmapi.Suggestion

	switch {
	case gotDate && gotTime:
		text = "Great! I've set up your appointment!\n\nDo you need a repair or just a tune-up?"
		suggestions = []bmapi.Suggestion{
			bmapi.NewReply("Repair", "repair"),
			bmapi.NewReply("Tune-up", "tune-up"),
		}
	case gotDate:
		text = "What time works for you?"
		suggestions = suggestedTimes()
	default:
		// Time only or neither: ask for the date first.
		text = "What day do you want to come in?"
		suggestions = suggestedDates()
	}

	return []*bmapi.Message{{
		Text:        text,
		Suggestions: suggestions,
	}}
}

// appointmentFollowUpResponse confirms the appointment and offers an
// add-to-calendar link. Date and time come from the conversation
// context; the appointment type is a parameter of this turn. If any of
// them is structurally absent the builder logs and suppresses output
// rather than sending a malformed confirmation.
func (s *Selector) appointmentFollowUpResponse(qr *dialogflow.QueryResult) []*bmapi.Message {
	if len(qr.OutputContexts) == 0 {
		s.log.Warn("Appointment follow-up without output context; suppressing reply")
		return nil
	}

	context := qr.OutputContexts[0]
	appointmentType := qr.Parameters.String(paramAppointmentType)

	date, err := parseDialogflowTime(context.Parameters.String(paramDate))
	if err != nil {
		s.log.WithError(err).Warn("Appointment follow-up has no usable date; suppressing reply")
		return nil
	}
	startTime, err := parseDialogflowTime(context.Parameters.String(paramTime))
	if err != nil {
		s.log.WithError(err).Warn("Appointment follow-up has no usable time; suppressing reply")
		return nil
	}
	if appointmentType == "" {
		s.log.Warn("Appointment follow-up has no appointment type; suppressing reply")
		return nil
	}

	// Shift the UTC-rendered time into the business's fixed offset, then
	// compute the 30-minute event window.
	offset := time.Duration(s.offsetHours)*time.Hour + time.Duration(s.offsetMinutes)*time.Minute
	localStart := startTime.UTC().Add(offset)
	localEnd := localStart.Add(appointmentDuration)

	dateAsString := date.UTC().Format("Monday, January 2, 2006")
	timeAsString := formatClockTime(localStart)

	text := fmt.Sprintf("Okay, we'll schedule a %s, %s, at %s.  We'll see you then!",
		appointmentType, dateAsString, timeAsString)

	calendarURL := calendarRenderURL(localStart, localEnd)

	return []*bmapi.Message{{
		Text: text,
		Suggestions: []bmapi.Suggestion{
			bmapi.NewURLAction("Add to my calendar", "thanks", calendarURL),
			bmapi.NewReply("What are your hours?", "What are your hours?"),
			bmapi.NewReply("Where are you located?", "Where are you located?"),
		},
	}}
}

// calendarRenderURL builds the Google Calendar event deep link for the
// appointment window, pointing at the Mountain View location details.
func calendarRenderURL(start, end time.Time) string {
	return "https://www.google.com/calendar/render?action=TEMPLATE" +
		"&text=Your+Bike+Appointment+with+Sean's+bike+shop" +
		"&dates=" + start.Format(calendarTimeFormat) + "/" + end.Format(calendarTimeFormat) +
		"&details=For+location+details,+link+here:+" + mountainViewMapsURL +
		"&sf=true&output=xml"
}

// parseDialogflowTime parses the timestamp strings Dialogflow produces
// for @sys.date and @sys.time parameters.
func parseDialogflowTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// formatClockTime renders a time as "3:04 pm".
func formatClockTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem)
}

// suggestedTimes are the canned appointment time chips.
func suggestedTimes() []bmapi.Suggestion {
	return []bmapi.Suggestion{
		bmapi.NewReply("9am", "9:00 am"),
		bmapi.NewReply("10am", "10:00 am"),
		bmapi.NewReply("1pm", "1:00 pm"),
		bmapi.NewReply("2pm", "2:00 pm"),
	}
}

// suggestedDates are the canned appointment date chips.
func suggestedDates() []bmapi.Suggestion {
	return []bmapi.Suggestion{
		bmapi.NewReply("Today", "Today"),
		bmapi.NewReply("Tomorrow", "Tomorrow"),
		bmapi.NewReply("Two days from now", "two days from now"),
	}
}
