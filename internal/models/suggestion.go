package models

import "time"

// SuggestionRecord is the persisted, per-group output of a recommendation
// run. Each run fully overwrites the previous record; the record goes stale
// as soon as membership, interests, or the catalog change, and callers decide
// when to refresh.
type SuggestionRecord struct {
	// GroupID identifies the group this record belongs to.
	GroupID string `json:"groupId"`

	// CommonInterests is the common-interest set used for the run.
	CommonInterests []string `json:"commonInterests"`

	// SuggestedActivities is the ordered list of suggested activity IDs,
	// highest score first, capped at the engine's result limit.
	SuggestedActivities []string `json:"suggestedActivities"`

	// Scores maps activity ID to its computed score.
	Scores map[string]int `json:"scores"`

	// LastUpdate is when the record was computed.
	LastUpdate time.Time `json:"lastUpdate"`
}

// ScoredSuggestion pairs an activity with the score and matched tags it
// received for a particular group run. It is derived, never persisted on its
// own.
type ScoredSuggestion struct {
	Activity Activity `json:"activity"`

	// Score is the non-negative integer fit summary. Activities scoring zero
	// are excluded from results.
	Score int `json:"score"`

	// MatchedInterests is the subset of the activity's tags that were also in
	// the group's common-interest set.
	MatchedInterests []string `json:"matchedInterests"`
}
