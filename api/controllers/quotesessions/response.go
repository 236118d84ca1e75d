package quotesessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/internal/quote"
)

type lineItemView struct {
	TreatmentID uuid.UUID `json:"treatment_id"`
	Name        string    `json:"name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int64     `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

type promotionView struct {
	Code         string `json:"code"`
	Kind         string `json:"kind"`
	Value        string `json:"value"`
	Source       string `json:"source"`
	SpecialPrice bool   `json:"special_price"`
}

type sessionView struct {
	ID             uuid.UUID            `json:"id"`
	Patient        quote.PatientDetails `json:"patient"`
	LineItems      []lineItemView       `json:"line_items"`
	Promotion      *promotionView       `json:"promotion,omitempty"`
	Subtotal       string               `json:"subtotal"`
	DiscountAmount string               `json:"discount_amount"`
	Total          string               `json:"total"`
	Status         string               `json:"status"`
	QuoteID        *uuid.UUID           `json:"quote_id,omitempty"`
	FailureReason  *string              `json:"failure_reason,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func toPromotionView(p *promotions.Promotion) *promotionView {
	if p == nil {
		return nil
	}
	return &promotionView{
		Code:         p.Code,
		Kind:         p.Kind.String(),
		Value:        p.Value.StringFixed(2),
		Source:       p.Source.String(),
		SpecialPrice: p.SpecialPrice,
	}
}

// toSessionView renders the session with amounts rounded to cents. The
// engine keeps full precision internally; rounding happens only here.
func toSessionView(s *quote.Session) sessionView {
	items := make([]lineItemView, len(s.State.LineItems))
	for i, item := range s.State.LineItems {
		items[i] = lineItemView{
			TreatmentID: item.TreatmentID,
			Name:        item.Name,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal().StringFixed(2),
		}
	}

	view := sessionView{
		ID:             s.ID,
		Patient:        s.Patient,
		LineItems:      items,
		Promotion:      toPromotionView(s.State.Promotion),
		Subtotal:       s.State.Subtotal.StringFixed(2),
		DiscountAmount: s.State.DiscountAmount.StringFixed(2),
		Total:          s.State.Total.StringFixed(2),
		Status:         s.State.Status.String(),
		QuoteID:        s.State.QuoteID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.State.FailureReason != nil {
		reason := s.State.FailureReason.String()
		view.FailureReason = &reason
	}
	return view
}
