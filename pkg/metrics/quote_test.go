package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQuoteMetricsCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.IncSubmission("submitted")
	m.IncSubmission("submitted")
	m.IncSubmission("failed")
	m.IncPromotionApplied("promo_code")
	m.IncPromotionApplied("")
	m.ObserveSubmissionDuration(120 * time.Millisecond)

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("submitted")); got != 2 {
		t.Fatalf("expected 2 submitted, got %v", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed, got %v", got)
	}
	if got := testutil.ToFloat64(m.promotionsApplied.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("empty source should be normalized, got %v", got)
	}
}

func TestQuoteMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *QuoteMetrics
	m.IncSubmission("submitted")
	m.IncPromotionApplied("promo_code")
	m.ObserveSubmissionDuration(time.Second)

	unregistered := NewQuoteMetrics(nil)
	unregistered.IncSubmission("submitted")
}
