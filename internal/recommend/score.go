package recommend

import (
	"math"
	"strings"
	"time"
)

// Score component weights. The interest overlap ratio scales to 100, so a
// perfect tag match dominates the contextual bonuses.
const (
	overlapScale  = 100.0
	freeBonus     = 15
	localityBonus = 20
	noveltyBonus  = 10
	dateBonus     = 15

	// dateWindowDays is the inclusive horizon for the date-proximity bonus:
	// [today, today+7].
	dateWindowDays = 7
)

// Candidate carries the minimal activity information needed for scoring.
type Candidate struct {
	ID       string
	Tags     []string
	Free     bool
	Location string
	IsNew    bool

	// Date is the scheduled calendar date. HasDate is false when the catalog
	// entry had no parseable date, in which case the date bonus never applies.
	Date    time.Time
	HasDate bool
}

// Score computes the fit of a candidate activity for a group.
//
// The score is the sum of independent components, rounded to the nearest
// integer:
//   - interest overlap: matched tags / common-set size × 100 (0 when the
//     common set is empty)
//   - +15 when the activity is free
//   - +20 when the activity's location contains the group's city hint
//     (case-insensitive substring; one-directional on purpose)
//   - +10 when the activity is newly added
//   - +15 when the date falls within [today, today+7] inclusive
//
// It returns the score and the sorted subset of the candidate's tags that
// matched the common set. A zero score means the activity should not be
// suggested.
func Score(c Candidate, commonInterests []string, cityHint string, today time.Time) (int, []string) {
	var total float64

	matched := matchedTags(c.Tags, commonInterests)
	if len(commonInterests) > 0 {
		total += float64(len(matched)) / float64(len(commonInterests)) * overlapScale
	}

	if c.Free {
		total += freeBonus
	}

	if cityHint != "" && strings.Contains(strings.ToLower(c.Location), strings.ToLower(cityHint)) {
		total += localityBonus
	}

	if c.IsNew {
		total += noveltyBonus
	}

	if c.HasDate && withinDateWindow(c.Date, today) {
		total += dateBonus
	}

	return int(math.Round(total)), matched
}

// matchedTags returns the sorted intersection of an activity's tags with the
// common-interest set, each tag counted once regardless of duplicates.
func matchedTags(tags, commonInterests []string) []string {
	common := toSet(commonInterests)
	matched := make(map[string]struct{})
	for _, tag := range tags {
		if _, ok := common[tag]; ok {
			matched[tag] = struct{}{}
		}
	}
	return sortedKeys(matched)
}

// withinDateWindow reports whether date falls in [today, today+7] by calendar
// day, ignoring time of day and location of either timestamp.
func withinDateWindow(date, today time.Time) bool {
	day := truncateToDay(date)
	start := truncateToDay(today)
	end := start.AddDate(0, 0, dateWindowDays)
	return !day.Before(start) && !day.After(end)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
