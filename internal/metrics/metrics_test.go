package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsRegistered(t *testing.T) {
	ObserveRun(OutcomeOK, time.Now(), 3)
	ObserveRun(OutcomeError, time.Now(), 0)
	HTTPRequestDuration.WithLabelValues("GET", "/api/groups", "200").Observe(0.01)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	registered := make(map[string]bool, len(families))
	for _, family := range families {
		registered[family.GetName()] = true
	}

	for _, name := range []string{
		"what2do_recommendation_runs_total",
		"what2do_recommendation_duration_seconds",
		"what2do_suggestions_returned",
		"what2do_http_request_duration_seconds",
	} {
		if !registered[name] {
			t.Errorf("metric %s not registered with the default registry", name)
		}
	}
}

func TestObserveRunCountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRuns.WithLabelValues(OutcomeGroupNotFound))
	ObserveRun(OutcomeGroupNotFound, time.Now(), 0)

	after := testutil.ToFloat64(RecommendationRuns.WithLabelValues(OutcomeGroupNotFound))
	if after != before+1 {
		t.Errorf("runs(%s) = %v, want %v", OutcomeGroupNotFound, after, before+1)
	}
}
