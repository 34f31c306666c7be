package domain

// EventCategory enumerates the marketing platform's activity event
// categories. The set is closed; EventsByCategory always reports every
// category, including empty ones.
type EventCategory string

// Known event categories.
const (
	CategoryEmail     EventCategory = "email"
	CategoryForm      EventCategory = "form"
	CategoryPage      EventCategory = "page"
	CategoryCTA       EventCategory = "cta"
	CategoryMarketing EventCategory = "marketing"
	CategoryCustom    EventCategory = "custom"
)

// EventCategories lists every category in stable display order.
var EventCategories = []EventCategory{
	CategoryEmail,
	CategoryForm,
	CategoryPage,
	CategoryCTA,
	CategoryMarketing,
	CategoryCustom,
}

// Event is a single entry in the static marketing platform event catalog.
// Qualification rules reference events by ID.
type Event struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    EventCategory `json:"category"`
	EventTypeID string        `json:"eventTypeId,omitempty"`
	Description string        `json:"description"`
}
