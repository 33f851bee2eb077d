package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
	"github.com/JN-EPHEC/what2do-backend/internal/storage/sqlite"
)

// testNow is the fixed clock for every recommendation test.
var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func dateIn(days int) string {
	return testNow.AddDate(0, 0, days).Format(activityDateLayout)
}

func newTestRecommender(t *testing.T) (*Recommender, storage.Store) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "what2do-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rec := NewRecommender(store)
	rec.now = func() time.Time { return testNow }
	return rec, store
}

func seedProfile(t *testing.T, store storage.Store, userID string, interests ...string) {
	t.Helper()
	if err := store.PutProfile(context.Background(), &models.Profile{UserID: userID, Interests: interests}); err != nil {
		t.Fatalf("PutProfile(%s) failed: %v", userID, err)
	}
}

func seedGroup(t *testing.T, store storage.Store, name, city string, members ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, City: city, Members: members}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestSuggestActivitiesForGroup(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "musique", "sport")
	seedProfile(t, store, "bob", "musique", "cuisine")
	group := seedGroup(t, store, "Colocs", "Bruxelles", "alice", "bob")

	perfect := &models.Activity{
		ID:        "act-concert",
		Title:     "Concert au parc",
		Price:     models.PriceFree,
		Location:  "Parc Royal, Bruxelles",
		Interests: []string{"musique", "sortie"},
		IsNew:     true,
		Date:      dateIn(3),
	}
	excluded := &models.Activity{
		ID:        "act-expo",
		Title:     "Expo peinture",
		Price:     models.PricePaid,
		Location:  "Anvers",
		Interests: []string{"peinture"},
		Date:      dateIn(30),
	}
	for _, a := range []*models.Activity{perfect, excluded} {
		if err := store.CreateActivity(ctx, a); err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}
	}

	suggestions, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	top := suggestions[0]
	if top.Activity.ID != "act-concert" {
		t.Errorf("top suggestion = %s, want act-concert", top.Activity.ID)
	}
	// 100 overlap + 15 free + 20 locality + 10 new + 15 date
	if top.Score != 160 {
		t.Errorf("score = %d, want 160", top.Score)
	}
	if !reflect.DeepEqual(top.MatchedInterests, []string{"musique"}) {
		t.Errorf("matched = %v, want [musique]", top.MatchedInterests)
	}

	t.Run("record is persisted", func(t *testing.T) {
		record, err := store.GetSuggestionRecord(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetSuggestionRecord failed: %v", err)
		}
		if !reflect.DeepEqual(record.CommonInterests, []string{"musique"}) {
			t.Errorf("commonInterests = %v", record.CommonInterests)
		}
		if !reflect.DeepEqual(record.SuggestedActivities, []string{"act-concert"}) {
			t.Errorf("suggestedActivities = %v", record.SuggestedActivities)
		}
		if record.Scores["act-concert"] != 160 {
			t.Errorf("scores = %v", record.Scores)
		}
		if !record.LastUpdate.Equal(testNow) {
			t.Errorf("lastUpdate = %v, want %v", record.LastUpdate, testNow)
		}
	})

	t.Run("rerun without data changes is idempotent", func(t *testing.T) {
		again, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
		}
		if !reflect.DeepEqual(again, suggestions) {
			t.Errorf("second run differs: %v vs %v", again, suggestions)
		}
	})
}

func TestSuggestActivitiesFallbackToUnion(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "sport")
	seedProfile(t, store, "bob", "cuisine")
	group := seedGroup(t, store, "Sans accord", "", "alice", "bob")

	activity := &models.Activity{
		ID:        "act-atelier",
		Title:     "Atelier cuisine",
		Price:     models.PricePaid,
		Location:  "Charleroi",
		Interests: []string{"cuisine"},
		Date:      dateIn(20),
	}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	suggestions, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	// Intersection is empty, so the common set is the union {cuisine, sport}
	// and the single matched tag is worth 1/2 × 100 = 50.
	if suggestions[0].Score != 50 {
		t.Errorf("score = %d, want 50", suggestions[0].Score)
	}

	record, err := store.GetSuggestionRecord(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetSuggestionRecord failed: %v", err)
	}
	if !reflect.DeepEqual(record.CommonInterests, []string{"cuisine", "sport"}) {
		t.Errorf("commonInterests = %v, want fallback union", record.CommonInterests)
	}
}

func TestSuggestActivitiesMissingProfiles(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	// Only one member has a profile; the other counts as no interests, which
	// forces the union fallback onto alice's set.
	seedProfile(t, store, "alice", "musique")
	group := seedGroup(t, store, "Duo", "", "alice", "ghost")

	activity := &models.Activity{
		ID:        "act-live",
		Title:     "Concert",
		Price:     models.PricePaid,
		Interests: []string{"musique"},
		Date:      dateIn(25),
	}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	suggestions, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Score != 100 {
		t.Fatalf("suggestions = %+v, want single 100-point match", suggestions)
	}
}

func TestSuggestActivitiesGroupNotFound(t *testing.T) {
	rec, _ := newTestRecommender(t)

	suggestions, err := rec.SuggestActivitiesForGroup(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error for missing group, got %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected empty result, got %v", suggestions)
	}
}

func TestSuggestActivitiesRankingAndCap(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "musique")
	group := seedGroup(t, store, "Grand groupe", "", "alice")

	// 12 scoring activities: all free (15 points), half of them new (25).
	for i := 0; i < 12; i++ {
		activity := &models.Activity{
			ID:    fmt.Sprintf("act-%02d", i),
			Title: fmt.Sprintf("Activité %d", i),
			Price: models.PriceFree,
			IsNew: i%2 == 0,
			Date:  dateIn(15),
		}
		if err := store.CreateActivity(ctx, activity); err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}
	}

	suggestions, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
	}

	if len(suggestions) != maxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", maxSuggestions, len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		prev, cur := suggestions[i-1], suggestions[i]
		if cur.Score > prev.Score {
			t.Errorf("scores not non-increasing at %d: %d then %d", i, prev.Score, cur.Score)
		}
		if cur.Score == prev.Score && prev.Activity.ID >= cur.Activity.ID {
			t.Errorf("tie at %d not broken by ID: %s then %s", i, prev.Activity.ID, cur.Activity.ID)
		}
	}
	// The six new activities outscore the rest and must all come first.
	for i := 0; i < 6; i++ {
		if suggestions[i].Score != 25 {
			t.Errorf("suggestion %d score = %d, want 25", i, suggestions[i].Score)
		}
	}
}

func TestSuggestActivitiesBonusOnlyMatchedTags(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "musique")
	group := seedGroup(t, store, "Plein air", "", "alice")

	// Scores on price and novelty alone; no tag overlaps the common set.
	activity := &models.Activity{
		ID:    "act-rando",
		Title: "Randonnée",
		Price: models.PriceFree,
		IsNew: true,
		Date:  dateIn(40),
	}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	suggestions, err := rec.SuggestActivitiesForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("SuggestActivitiesForGroup failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Score != 25 {
		t.Fatalf("suggestions = %+v, want single 25-point bonus match", suggestions)
	}
	if suggestions[0].MatchedInterests == nil {
		t.Error("matched interests is nil, want empty list")
	}
	if len(suggestions[0].MatchedInterests) != 0 {
		t.Errorf("matched interests = %v, want empty", suggestions[0].MatchedInterests)
	}
}

// overlapDetectingStore flags concurrent ListActivities calls. Runs for the
// same group hold the group lock across the whole pipeline, so two of them
// must never be inside ListActivities at once.
type overlapDetectingStore struct {
	storage.Store

	mu       sync.Mutex
	inFlight int
	overlap  bool
}

func (s *overlapDetectingStore) ListActivities(ctx context.Context) ([]models.Activity, error) {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > 1 {
		s.overlap = true
	}
	s.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	return s.Store.ListActivities(ctx)
}

func TestConcurrentRunsForSameGroupSerialize(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "musique")
	group := seedGroup(t, store, "Parallèle", "", "alice")

	detector := &overlapDetectingStore{Store: store}
	rec.store = detector

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := rec.SuggestActivitiesForGroup(ctx, group.ID); err != nil {
				t.Errorf("SuggestActivitiesForGroup failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if detector.overlap {
		t.Error("two runs for the same group overlapped inside the pipeline")
	}
}

func TestGetGroupSuggestions(t *testing.T) {
	rec, store := newTestRecommender(t)
	ctx := context.Background()

	seedProfile(t, store, "alice", "musique")
	group := seedGroup(t, store, "Solo", "", "alice")

	activity := &models.Activity{
		ID:        "act-jam",
		Title:     "Jam session",
		Price:     models.PriceFree,
		Interests: []string{"musique"},
		Date:      dateIn(2),
	}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	t.Run("computes on first lookup", func(t *testing.T) {
		activities, err := rec.GetGroupSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupSuggestions failed: %v", err)
		}
		if len(activities) != 1 || activities[0].ID != "act-jam" {
			t.Fatalf("activities = %+v", activities)
		}
	})

	t.Run("skips activities no longer in the catalog", func(t *testing.T) {
		record := &models.SuggestionRecord{
			GroupID:             group.ID,
			CommonInterests:     []string{"musique"},
			SuggestedActivities: []string{"act-gone", "act-jam"},
			Scores:              map[string]int{"act-gone": 120, "act-jam": 100},
			LastUpdate:          testNow,
		}
		if err := store.PutSuggestionRecord(ctx, record); err != nil {
			t.Fatalf("PutSuggestionRecord failed: %v", err)
		}

		activities, err := rec.GetGroupSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupSuggestions failed: %v", err)
		}
		if len(activities) != 1 || activities[0].ID != "act-jam" {
			t.Fatalf("activities = %+v, want only act-jam", activities)
		}
	})

	t.Run("unknown group yields empty without error", func(t *testing.T) {
		activities, err := rec.GetGroupSuggestions(ctx, "missing")
		if err != nil {
			t.Fatalf("GetGroupSuggestions failed: %v", err)
		}
		if len(activities) != 0 {
			t.Errorf("activities = %+v, want empty", activities)
		}
	})
}

// failingStore errors on every read, standing in for an unreachable backend.
type failingStore struct {
	storage.Store
}

var errStoreDown = errors.New("store unreachable")

func (failingStore) GetGroup(context.Context, string) (*models.Group, error) {
	return nil, errStoreDown
}

func (failingStore) GetSuggestionRecord(context.Context, string) (*models.SuggestionRecord, error) {
	return nil, errStoreDown
}

func TestOrEmptyCollapsesFailures(t *testing.T) {
	rec := NewRecommender(failingStore{})
	rec.now = func() time.Time { return testNow }
	ctx := context.Background()

	if got := rec.SuggestionsOrEmpty(ctx, "g1"); len(got) != 0 {
		t.Errorf("SuggestionsOrEmpty = %v, want empty", got)
	}
	if got := rec.GroupSuggestionsOrEmpty(ctx, "g1"); len(got) != 0 {
		t.Errorf("GroupSuggestionsOrEmpty = %v, want empty", got)
	}

	if _, err := rec.SuggestActivitiesForGroup(ctx, "g1"); !errors.Is(err, errStoreDown) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
