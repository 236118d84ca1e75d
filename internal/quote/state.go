package quote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/internal/pricing"
	"github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// LineItem is one selected treatment on a quote. Quantity is always at
// least 1; decrementing past 1 removes the line instead.
type LineItem struct {
	TreatmentID uuid.UUID       `json:"treatment_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// LineTotal is the extended price for the line at full precision.
func (l LineItem) LineTotal() decimal.Decimal {
	return pricing.LineTotal(pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
}

// State is the quote aggregate mutated exclusively through Reduce. The
// monetary fields are derived and recomputed on every transition; they are
// never set directly. Generation increments on every content mutation so
// stale in-flight submission results can be recognized and dropped.
type State struct {
	LineItems      []LineItem             `json:"line_items"`
	Promotion      *promotions.Promotion  `json:"promotion,omitempty"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	Total          decimal.Decimal        `json:"total"`
	Status         enums.SubmissionStatus `json:"status"`
	QuoteID        *uuid.UUID             `json:"quote_id,omitempty"`
	FailureReason  *enums.FailureReason   `json:"failure_reason,omitempty"`
	Generation     int64                  `json:"generation"`
}

// NewState returns an empty quote ready for editing.
func NewState() State {
	state := State{Status: enums.SubmissionStatusIdle}
	return state.recomputed()
}

// IsSubmitted reports whether the quote reached its terminal state.
func (s State) IsSubmitted() bool {
	return s.Status == enums.SubmissionStatusSubmitted
}

// findLine returns the index of the line item for a treatment, or -1.
func (s State) findLine(treatmentID uuid.UUID) int {
	for i, line := range s.LineItems {
		if line.TreatmentID == treatmentID {
			return i
		}
	}
	return -1
}

// clone deep-copies the state so transitions never alias the input.
func (s State) clone() State {
	next := s
	next.LineItems = make([]LineItem, len(s.LineItems))
	copy(next.LineItems, s.LineItems)
	if s.Promotion != nil {
		promo := *s.Promotion
		next.Promotion = &promo
	}
	if s.QuoteID != nil {
		id := *s.QuoteID
		next.QuoteID = &id
	}
	if s.FailureReason != nil {
		reason := *s.FailureReason
		next.FailureReason = &reason
	}
	return next
}

// recomputed rederives subtotal, discount, and total from the current line
// items and promotion. Full precision is kept; rounding happens at the
// presentation layer only, so recomputation is idempotent.
func (s State) recomputed() State {
	lines := make([]pricing.Line, 0, len(s.LineItems))
	for _, item := range s.LineItems {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}

	s.Subtotal = pricing.Subtotal(lines)
	s.DiscountAmount = decimal.Zero
	if s.Promotion != nil {
		s.DiscountAmount = pricing.DiscountAmount(s.Subtotal, s.Promotion.Kind, s.Promotion.Value)
	}
	s.Total = pricing.Total(s.Subtotal, s.DiscountAmount)
	return s
}
