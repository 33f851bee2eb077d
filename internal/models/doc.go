// Package models defines the core domain models for the What2do backend.
//
// # Models
//
//   - Group: a set of users planning activities together
//   - Profile: a user's interest tags
//   - Activity: a catalog entry that can be suggested to a group
//   - SuggestionRecord: the persisted output of a recommendation run
//   - ScoredSuggestion: an activity paired with its computed score
//
// # Design Principles
//
// 1. **Storage-agnostic**: models carry JSON field names only; the storage
// layer owns its own schema.
// 2. **Avoid circular references**: relationships use ID strings, not pointers.
// 3. **Wire parity**: JSON field names match what the mobile client already
// reads from the hosted document store (members, city, interests, price,
// isNew, date, commonInterests, suggestedActivities, lastUpdate, scores).
package models
