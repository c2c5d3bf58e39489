package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	r.BatchStarted()
	r.BatchFinished(time.Second)
	r.ParseResults(3, 1)
	r.EvaluationFailures(2)
	r.Qualified(1)
	r.Scheduled(1)
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.BatchStarted()
	r.ParseResults(3, 1)
	r.EvaluationFailures(1)
	r.Qualified(2)
	r.Scheduled(2)

	if got := testutil.ToFloat64(r.batches); got != 1 {
		t.Fatalf("expected 1 batch, got %v", got)
	}
	if got := testutil.ToFloat64(r.resumesParsed); got != 3 {
		t.Fatalf("expected 3 parsed, got %v", got)
	}
	if got := testutil.ToFloat64(r.parseFailures); got != 1 {
		t.Fatalf("expected 1 parse failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.candidatesQualified); got != 2 {
		t.Fatalf("expected 2 qualified, got %v", got)
	}
}
