package models

// Profile represents a user's interest profile.
//
// The engine treats a missing profile as an empty interest set, so a group
// member without a profile never fails a recommendation run.
type Profile struct {
	// UserID identifies the owning user account.
	UserID string `json:"userId"`

	// Interests is the set of free-text interest tags (e.g., "musique",
	// "sport"). May be empty.
	Interests []string `json:"interests"`
}
