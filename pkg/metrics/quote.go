package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records quote session and submission outcomes.
type QuoteMetrics struct {
	submissions        *prometheus.CounterVec
	promotionsApplied  *prometheus.CounterVec
	submissionDuration prometheus.Histogram
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Quote submissions by outcome.",
	}, []string{"outcome"})
	promotionsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_promotions_applied_total",
		Help: "Promotions applied to quote sessions by source.",
	}, []string{"source"})
	submissionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_submission_duration_seconds",
		Help:    "Duration of quote submission calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(submissions, promotionsApplied, submissionDuration)
	return &QuoteMetrics{
		submissions:        submissions,
		promotionsApplied:  promotionsApplied,
		submissionDuration: submissionDuration,
	}
}

// IncSubmission increments the submission counter for the given outcome.
func (q *QuoteMetrics) IncSubmission(outcome string) {
	if q == nil || q.submissions == nil {
		return
	}
	q.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncPromotionApplied increments the promotion counter for the given source.
func (q *QuoteMetrics) IncPromotionApplied(source string) {
	if q == nil || q.promotionsApplied == nil {
		return
	}
	q.promotionsApplied.WithLabelValues(normalizeLabel(source)).Inc()
}

// ObserveSubmissionDuration records how long a submission call took.
func (q *QuoteMetrics) ObserveSubmissionDuration(d time.Duration) {
	if q == nil || q.submissionDuration == nil {
		return
	}
	q.submissionDuration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
