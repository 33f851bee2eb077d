package models

// Group represents a set of users planning activities together.
//
// The recommendation engine only reads groups; membership changes come from
// the group screens and go straight to storage.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Colocs", "Soirée jeudi").
	Name string `json:"name"`

	// Members is the list of member user IDs. Order is irrelevant to the
	// engine; duplicates are not expected.
	Members []string `json:"members"`

	// City is an optional locality hint (free text, e.g., "Bruxelles").
	// Used for the locality bonus when scoring activities.
	City string `json:"city,omitempty"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}
