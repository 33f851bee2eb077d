// Package service orchestrates recommendation runs: loading group and profile
// data, scoring the catalog, and persisting the per-group suggestion record.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/JN-EPHEC/what2do-backend/internal/metrics"
	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/recommend"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

// maxSuggestions caps the ranked result per group.
const maxSuggestions = 10

// activityDateLayout is the ISO calendar-date format used by the catalog.
const activityDateLayout = "2006-01-02"

// Recommender computes and persists activity suggestions for groups.
//
// Store failures surface as errors from the primary methods; the *OrEmpty
// variants collapse every failure to an empty result after logging, matching
// what the mobile client has always experienced ("no suggestions right now").
type Recommender struct {
	store storage.Store
	locks *keyedMutex

	// now is the clock used for the date-proximity window and record
	// timestamps. Overridable in tests.
	now func() time.Time
}

// NewRecommender creates a Recommender with the given storage backend.
func NewRecommender(store storage.Store) *Recommender {
	return &Recommender{
		store: store,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// SuggestActivitiesForGroup runs the full recommendation pipeline for a
// group: derive the common-interest set, score the catalog, rank, truncate,
// persist the suggestion record, and return the ranked suggestions.
//
// A group that does not exist yields an empty result and no error. Runs for
// the same group are serialized; the record write is a full overwrite.
func (r *Recommender) SuggestActivitiesForGroup(ctx context.Context, groupID string) ([]models.ScoredSuggestion, error) {
	start := r.now()

	unlock := r.locks.Lock(groupID)
	defer unlock()

	group, err := r.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrGroupNotFound) {
		slog.Warn("Recommendation run skipped, group not found", "group_id", groupID)
		metrics.ObserveRun(metrics.OutcomeGroupNotFound, start, 0)
		return nil, nil
	}
	if err != nil {
		metrics.ObserveRun(metrics.OutcomeError, start, 0)
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	commonInterests := r.commonInterests(ctx, group)

	activities, err := r.store.ListActivities(ctx)
	if err != nil {
		metrics.ObserveRun(metrics.OutcomeError, start, 0)
		return nil, fmt.Errorf("failed to load activity catalog: %w", err)
	}

	suggestions := rankActivities(activities, commonInterests, group.City, r.now())

	record := &models.SuggestionRecord{
		GroupID:         groupID,
		CommonInterests: commonInterests,
		Scores:          make(map[string]int, len(suggestions)),
		LastUpdate:      r.now(),
	}
	for _, s := range suggestions {
		record.SuggestedActivities = append(record.SuggestedActivities, s.Activity.ID)
		record.Scores[s.Activity.ID] = s.Score
	}

	if err := r.store.PutSuggestionRecord(ctx, record); err != nil {
		metrics.ObserveRun(metrics.OutcomeError, start, 0)
		return nil, fmt.Errorf("failed to persist suggestion record: %w", err)
	}

	slog.Info("Recommendation run completed",
		"group_id", groupID,
		"members", len(group.Members),
		"common_interests", len(commonInterests),
		"catalog_size", len(activities),
		"suggestions", len(suggestions),
	)
	metrics.ObserveRun(metrics.OutcomeOK, start, len(suggestions))

	return suggestions, nil
}

// RefreshGroupSuggestions forces a fresh recommendation run, bypassing any
// persisted record.
func (r *Recommender) RefreshGroupSuggestions(ctx context.Context, groupID string) ([]models.ScoredSuggestion, error) {
	return r.SuggestActivitiesForGroup(ctx, groupID)
}

// GetGroupSuggestions reads the persisted suggestion record, computing it
// once if the group has never been scored, and resolves the stored IDs to
// full activity records. IDs that no longer resolve to a catalog entry are
// silently skipped.
func (r *Recommender) GetGroupSuggestions(ctx context.Context, groupID string) ([]models.Activity, error) {
	record, err := r.store.GetSuggestionRecord(ctx, groupID)
	if errors.Is(err, storage.ErrSuggestionsNotFound) {
		if _, err := r.SuggestActivitiesForGroup(ctx, groupID); err != nil {
			return nil, err
		}
		record, err = r.store.GetSuggestionRecord(ctx, groupID)
		if errors.Is(err, storage.ErrSuggestionsNotFound) {
			// Group unknown or nothing scored; either way nothing to return.
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read suggestion record: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read suggestion record: %w", err)
	}

	var activities []models.Activity
	for _, activityID := range record.SuggestedActivities {
		activity, err := r.store.GetActivity(ctx, activityID)
		if errors.Is(err, storage.ErrActivityNotFound) {
			slog.Debug("Skipping suggestion no longer in catalog",
				"group_id", groupID, "activity_id", activityID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve activity: %w", err)
		}
		activities = append(activities, *activity)
	}

	return activities, nil
}

// SuggestionsOrEmpty is the compatibility wrapper around
// SuggestActivitiesForGroup: any failure is logged and collapsed to an empty
// list, so callers never see an error from the engine.
func (r *Recommender) SuggestionsOrEmpty(ctx context.Context, groupID string) []models.ScoredSuggestion {
	suggestions, err := r.SuggestActivitiesForGroup(ctx, groupID)
	if err != nil {
		slog.Error("Recommendation run failed", "group_id", groupID, "error", err)
		return nil
	}
	return suggestions
}

// GroupSuggestionsOrEmpty is the compatibility wrapper around
// GetGroupSuggestions, collapsing failures to an empty list.
func (r *Recommender) GroupSuggestionsOrEmpty(ctx context.Context, groupID string) []models.Activity {
	activities, err := r.GetGroupSuggestions(ctx, groupID)
	if err != nil {
		slog.Error("Suggestion lookup failed", "group_id", groupID, "error", err)
		return nil
	}
	return activities
}

// commonInterests loads every member's profile sequentially and derives the
// group's common-interest set. A member whose profile is missing or fails to
// load counts as having no interests; the run proceeds with partial data.
func (r *Recommender) commonInterests(ctx context.Context, group *models.Group) []string {
	memberInterests := make([][]string, 0, len(group.Members))
	for _, memberID := range group.Members {
		profile, err := r.store.GetProfile(ctx, memberID)
		if errors.Is(err, storage.ErrProfileNotFound) {
			memberInterests = append(memberInterests, nil)
			continue
		}
		if err != nil {
			slog.Warn("Profile load failed, treating member as without interests",
				"group_id", group.ID, "member_id", memberID, "error", err)
			memberInterests = append(memberInterests, nil)
			continue
		}
		memberInterests = append(memberInterests, profile.Interests)
	}
	return recommend.CommonInterests(memberInterests)
}

// rankActivities scores the whole catalog, drops zero scores, sorts by
// descending score with activity ID as the deterministic tie-break, and
// truncates to maxSuggestions.
func rankActivities(activities []models.Activity, commonInterests []string, cityHint string, now time.Time) []models.ScoredSuggestion {
	var scored []models.ScoredSuggestion
	for _, activity := range activities {
		score, matched := recommend.Score(toCandidate(activity), commonInterests, cityHint, now)
		if score == 0 {
			continue
		}
		if matched == nil {
			// Bonus-only suggestions serialize with an empty tag list, not null.
			matched = []string{}
		}
		scored = append(scored, models.ScoredSuggestion{
			Activity:         activity,
			Score:            score,
			MatchedInterests: matched,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Activity.ID < scored[j].Activity.ID
	})

	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}
	return scored
}

// toCandidate converts a catalog activity to the scoring input. Activities
// with an unparseable date simply never earn the date-proximity bonus.
func toCandidate(activity models.Activity) recommend.Candidate {
	candidate := recommend.Candidate{
		ID:       activity.ID,
		Tags:     activity.Interests,
		Free:     activity.IsFree(),
		Location: activity.Location,
		IsNew:    activity.IsNew,
	}
	if date, err := time.Parse(activityDateLayout, activity.Date); err == nil {
		candidate.Date = date
		candidate.HasDate = true
	}
	return candidate
}
