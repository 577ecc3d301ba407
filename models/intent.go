package models

// IntentKind classifies an inbound message after the presentation layer has
// stripped chat decoration. The dialogue engine switches on these values and
// never inspects raw button text.
type IntentKind int

const (
	IntentText IntentKind = iota // free-form text, meaning depends on stage
	IntentStart
	IntentReserve
	IntentCancel
	IntentDaySelected
	IntentSlotSelected
	IntentCancelChoice
)

// Intent is a typed inbound event.
type Intent struct {
	Kind      IntentKind
	Resource  ResourceKind // set for IntentReserve
	DayOffset int          // set for IntentDaySelected (days from today)
	Slot      string       // set for IntentSlotSelected, bare label
	Day       string       // set for IntentCancelChoice
	Text      string       // original trimmed text
}

// Prompt is a typed outbound reply. The presentation layer renders it into a
// message plus an optional reply keyboard; the dialogue engine never emits
// decoration glyphs itself.
type Prompt struct {
	Text           string
	MainMenu       bool        // render the main menu keyboard
	RemoveKeyboard bool        // clear any previous keyboard
	DayOffsets     []DayOption // render the day choice keyboard
	Slots          []SlotOption
	CancelOptions  []BookingKey
}

// DayOption is a selectable day in the day menu.
type DayOption struct {
	Offset int    // days from today
	Key    string // canonical day key
}
