package quote

import (
	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// Action is the closed vocabulary of quote state transitions. Every action
// is applied through Reduce; none performs I/O.
type Action interface {
	isAction()
}

// AddLineItem appends a treatment to the quote, or increments the quantity
// when the treatment is already selected.
type AddLineItem struct {
	Treatment LineItem
}

// RemoveLineItem deletes a line item entirely, regardless of quantity.
type RemoveLineItem struct {
	TreatmentID uuid.UUID
}

// SetQuantity sets a line item's quantity directly. Quantities below 1
// remove the line item instead.
type SetQuantity struct {
	TreatmentID uuid.UUID
	Quantity    int64
}

// ApplyPromotion replaces the active promotion. Promotions never stack.
type ApplyPromotion struct {
	Promotion promotions.Promotion
}

// RemovePromotion clears the active promotion.
type RemovePromotion struct{}

// SubmitRequest marks the quote as submitting. No other field changes.
type SubmitRequest struct{}

// SubmitSuccess records the quote id returned by persistence. Generation
// pins the result to the state it was computed from; stale results are
// dropped by the reducer.
type SubmitSuccess struct {
	Generation int64
	QuoteID    uuid.UUID
}

// SubmitFailure records a classified submission failure.
type SubmitFailure struct {
	Generation int64
	Reason     enums.FailureReason
}

func (AddLineItem) isAction()     {}
func (RemoveLineItem) isAction()  {}
func (SetQuantity) isAction()     {}
func (ApplyPromotion) isAction()  {}
func (RemovePromotion) isAction() {}
func (SubmitRequest) isAction()   {}
func (SubmitSuccess) isAction()   {}
func (SubmitFailure) isAction()   {}
