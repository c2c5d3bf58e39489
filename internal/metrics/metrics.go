// Package metrics exposes Prometheus counters for the recruitment
// pipeline. Exposing the registry over HTTP is the embedding
// application's concern.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "talentflow"
	subsystem = "pipeline"
)

// Recorder tracks per-phase batch counts. A nil Recorder is valid and
// records nothing.
type Recorder struct {
	batches             prometheus.Counter
	batchDuration       prometheus.Histogram
	resumesParsed       prometheus.Counter
	parseFailures       prometheus.Counter
	evaluationFailures  prometheus.Counter
	candidatesQualified prometheus.Counter
	interviewsScheduled prometheus.Counter
}

// NewRecorder registers the pipeline metrics with the provided registerer.
// Passing nil uses the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Recorder{
		batches: counter("batches_total", "Number of orchestration batches run."),
		batchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of a full batch run.",
			Buckets:   prometheus.DefBuckets,
		}),
		resumesParsed:       counter("resumes_parsed_total", "Resumes parsed successfully."),
		parseFailures:       counter("resume_parse_failures_total", "Resumes that failed to parse."),
		evaluationFailures:  counter("evaluation_failures_total", "Candidates dropped due to evaluation errors."),
		candidatesQualified: counter("candidates_qualified_total", "Candidates passing both thresholds."),
		interviewsScheduled: counter("interviews_scheduled_total", "Interviews booked successfully."),
	}
}

// BatchStarted counts one batch run.
func (r *Recorder) BatchStarted() {
	if r == nil {
		return
	}
	r.batches.Inc()
}

// BatchFinished records the batch duration.
func (r *Recorder) BatchFinished(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.batchDuration.Observe(elapsed.Seconds())
}

// ParseResults records the outcome split of the parse phase.
func (r *Recorder) ParseResults(parsed, failed int) {
	if r == nil {
		return
	}
	r.resumesParsed.Add(float64(parsed))
	r.parseFailures.Add(float64(failed))
}

// EvaluationFailures counts candidates dropped during evaluation.
func (r *Recorder) EvaluationFailures(n int) {
	if r == nil {
		return
	}
	r.evaluationFailures.Add(float64(n))
}

// Qualified counts candidates passing both thresholds.
func (r *Recorder) Qualified(n int) {
	if r == nil {
		return
	}
	r.candidatesQualified.Add(float64(n))
}

// Scheduled counts successfully booked interviews.
func (r *Recorder) Scheduled(n int) {
	if r == nil {
		return
	}
	r.interviewsScheduled.Add(float64(n))
}
