package models

// Price classification values as stored in the catalog.
const (
	PriceFree = "Gratuit"
	PricePaid = "Payant"
)

// Activity represents a catalog entry that can be suggested to a group.
// Catalog management is out of scope for this service; activities are
// immutable during a scoring run.
type Activity struct {
	// ID is the unique identifier for the activity (UUID format).
	ID string `json:"id"`

	// Title and Description are display-only; they play no part in scoring.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Category is display-only (e.g., "Concert", "Sport").
	Category string `json:"category"`

	// Price is exactly one of PriceFree or PricePaid.
	Price string `json:"price"`

	// Location is free text expected to optionally embed a city name.
	Location string `json:"location"`

	// Interests describes what kind of people would enjoy this activity.
	Interests []string `json:"interests"`

	// Image is an optional display image URL.
	Image string `json:"image,omitempty"`

	// IsNew marks activities recently added to the catalog.
	IsNew bool `json:"isNew"`

	// Date is the scheduled calendar date in ISO format (YYYY-MM-DD).
	// Time of day is not tracked.
	Date string `json:"date"`
}

// IsFree reports whether the activity's price classification is free.
func (a Activity) IsFree() bool {
	return a.Price == PriceFree
}
