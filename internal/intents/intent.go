// Package intents maps Dialogflow intents to canned Business Messages
// reply payloads for the bike shop agent. Each recognized intent has
// exactly one pure builder; unrecognized intents produce no payload and
// the caller falls back to the agent's plain fulfillment text.
package intents

// Intent enumerates the intents the agent recognizes.
// Dispatching on an enumerated type instead of a string-keyed map gives
// compile-time coverage checking of the builder switch.
type Intent int

const (
	// IntentUnknown is any display name without a dedicated builder.
	IntentUnknown Intent = iota
	// IntentWelcome greets a new consumer.
	IntentWelcome
	// IntentGoodbye closes the conversation.
	IntentGoodbye
	// IntentHours answers opening-hours questions.
	IntentHours
	// IntentLocation lists the shop locations as a carousel.
	IntentLocation
	// IntentMenu re-offers the main options.
	IntentMenu
	// IntentMakeAppointment collects appointment date and time.
	IntentMakeAppointment
	// IntentAppointmentFollowUp confirms a fully specified appointment.
	IntentAppointmentFollowUp
)

// Dialogflow intent display names, as configured on the agent.
const (
	nameWelcome             = "Default Welcome Intent"
	nameGoodbye             = "Good Bye / Thanks"
	nameHours               = "Hours"
	nameLocation            = "Location"
	nameMenu                = "Menu"
	nameMakeAppointment     = "Make Appointment"
	nameAppointmentFollowUp = "Make Appointment - custom"
)

// Parse maps a Dialogflow intent display name to an Intent.
func Parse(displayName string) Intent {
	switch displayName {
	case nameWelcome:
		return IntentWelcome
	case nameGoodbye:
		return IntentGoodbye
	case nameHours:
		return IntentHours
	case nameLocation:
		return IntentLocation
	case nameMenu:
		return IntentMenu
	case nameMakeAppointment:
		return IntentMakeAppointment
	case nameAppointmentFollowUp:
		return IntentAppointmentFollowUp
	default:
		return IntentUnknown
	}
}

// String returns the Dialogflow display name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentWelcome:
		return nameWelcome
	case IntentGoodbye:
		return nameGoodbye
	case IntentHours:
		return nameHours
	case IntentLocation:
		return nameLocation
	case IntentMenu:
		return nameMenu
	case IntentMakeAppointment:
		return nameMakeAppointment
	case IntentAppointmentFollowUp:
		return nameAppointmentFollowUp
	default:
		return "Unknown"
	}
}

// Recognized returns every intent with a dedicated builder.
func Recognized() []Intent {
	return []Intent{
		IntentWelcome,
		IntentGoodbye,
		IntentHours,
		IntentLocation,
		IntentMenu,
		IntentMakeAppointment,
		IntentAppointmentFollowUp,
	}
}
