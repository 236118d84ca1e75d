package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/internal/promotions"
)

// PatientDetails carries the contact fields captured by the quote wizard.
// They ride along with the session and are not part of the reducer state.
type PatientDetails struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Country string   `json:"country,omitempty"`
	Notes   []string `json:"notes,omitempty"`
}

// Session is one user's quote-in-progress. Sessions are private to their
// owner: no two sessions share state, and every action against a session
// is serialized by the session service.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Patient   PatientDetails `json:"patient"`
	State     State          `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSession creates an empty session ready for the wizard.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		State:     NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot is the finalized payload handed to the persistence collaborator
// on submission. Retries re-send the full current snapshot, never a diff.
type Snapshot struct {
	SessionID      uuid.UUID
	Patient        PatientDetails
	LineItems      []LineItem
	Promotion      *promotions.Promotion
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Snapshot captures the session's current pricing state for submission.
func (s *Session) Snapshot() Snapshot {
	state := s.State.clone()
	return Snapshot{
		SessionID:      s.ID,
		Patient:        s.Patient,
		LineItems:      state.LineItems,
		Promotion:      state.Promotion,
		Subtotal:       state.Subtotal,
		DiscountAmount: state.DiscountAmount,
		Total:          state.Total,
	}
}
