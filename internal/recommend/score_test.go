package recommend

import (
	"reflect"
	"testing"
	"time"
)

var today = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		candidate   Candidate
		common      []string
		cityHint    string
		wantScore   int
		wantMatched []string
	}{
		{
			name: "full match with every bonus",
			candidate: Candidate{
				ID:       "a1",
				Tags:     []string{"musique", "sortie"},
				Free:     true,
				Location: "Parc du Cinquantenaire, Bruxelles",
				IsNew:    true,
				Date:     today.AddDate(0, 0, 3),
				HasDate:  true,
			},
			common:   []string{"musique"},
			cityHint: "Bruxelles",
			// 100 overlap + 15 free + 20 locality + 10 new + 15 date
			wantScore:   160,
			wantMatched: []string{"musique"},
		},
		{
			name: "half overlap only",
			candidate: Candidate{
				ID:       "a2",
				Tags:     []string{"cuisine"},
				Free:     false,
				Location: "Namur",
				Date:     today.AddDate(0, 0, 20),
				HasDate:  true,
			},
			common:      []string{"cuisine", "sport"},
			cityHint:    "Liège",
			wantScore:   50,
			wantMatched: []string{"cuisine"},
		},
		{
			name: "no overlap and no bonuses scores zero",
			candidate: Candidate{
				ID:       "a3",
				Tags:     []string{"peinture"},
				Location: "Gand",
				Date:     today.AddDate(0, 0, 30),
				HasDate:  true,
			},
			common:    []string{"musique", "sport"},
			cityHint:  "Bruxelles",
			wantScore: 0,
		},
		{
			name: "bonuses accumulate without any overlap",
			candidate: Candidate{
				ID:      "a4",
				Free:    true,
				IsNew:   true,
				Date:    today.AddDate(0, 0, 5),
				HasDate: true,
			},
			common:    []string{"musique"},
			wantScore: 40,
		},
		{
			name: "empty common set contributes no overlap points",
			candidate: Candidate{
				ID:   "a5",
				Tags: []string{"musique"},
				Free: true,
			},
			common:    nil,
			wantScore: 15,
		},
		{
			name: "locality match is case-insensitive",
			candidate: Candidate{
				ID:       "a6",
				Location: "centre-ville de BRUXELLES",
			},
			common:    nil,
			cityHint:  "bruxelles",
			wantScore: 20,
		},
		{
			name: "hint containing the location does not count",
			candidate: Candidate{
				ID:       "a7",
				Location: "Bruxelles",
			},
			common:    nil,
			cityHint:  "Bruxelles Capitale",
			wantScore: 0,
		},
		{
			name: "duplicate activity tags count once",
			candidate: Candidate{
				ID:   "a8",
				Tags: []string{"musique", "musique"},
			},
			common:      []string{"musique", "sport"},
			wantScore:   50,
			wantMatched: []string{"musique"},
		},
		{
			name: "third of three tags rounds to nearest integer",
			candidate: Candidate{
				ID:   "a9",
				Tags: []string{"sport"},
			},
			common:      []string{"cinema", "musique", "sport"},
			wantScore:   33,
			wantMatched: []string{"sport"},
		},
		{
			name: "two thirds rounds up",
			candidate: Candidate{
				ID:   "a10",
				Tags: []string{"sport", "musique"},
			},
			common:      []string{"cinema", "musique", "sport"},
			wantScore:   67,
			wantMatched: []string{"musique", "sport"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := Score(tt.candidate, tt.common, tt.cityHint, today)
			if score != tt.wantScore {
				t.Errorf("Score() = %d, want %d", score, tt.wantScore)
			}
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatched)
			}
		})
	}
}

func TestScoreDateWindow(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"yesterday is outside", today.AddDate(0, 0, -1), 0},
		{"today counts", today, dateBonus},
		{"today earlier in the day counts", truncateToDay(today), dateBonus},
		{"seventh day counts", today.AddDate(0, 0, 7), dateBonus},
		{"eighth day is outside", today.AddDate(0, 0, 8), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := Score(Candidate{ID: "d", Date: tt.date, HasDate: true}, nil, "", today)
			if score != tt.want {
				t.Errorf("Score() = %d, want %d", score, tt.want)
			}
		})
	}
}

// TestScoreMonotonicity checks that adding matched tags never lowers the
// score when everything else is fixed.
func TestScoreMonotonicity(t *testing.T) {
	common := []string{"cinema", "cuisine", "musique", "sport"}

	prev := -1
	tags := []string{}
	for _, tag := range common {
		tags = append(tags, tag)
		score, _ := Score(Candidate{ID: "m", Tags: tags}, common, "", today)
		if score < prev {
			t.Fatalf("score decreased from %d to %d with %d matched tags", prev, score, len(tags))
		}
		prev = score
	}
}
