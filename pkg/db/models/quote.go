package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/types"
)

// Quote is the immutable snapshot persisted when a quote session is
// submitted. Totals are stored exactly as computed by the pricing
// calculator at submission time.
type Quote struct {
	ID             uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID      uuid.UUID               `gorm:"column:session_id;type:uuid;not null;index"`
	PatientName    string                  `gorm:"column:patient_name;not null"`
	PatientEmail   string                  `gorm:"column:patient_email;not null"`
	PatientCountry *string                 `gorm:"column:patient_country"`
	PatientNotes   pq.StringArray          `gorm:"column:patient_notes;type:text[]"`
	Promotion      *types.AppliedPromotion `gorm:"column:promotion;type:jsonb"`
	Subtotal       decimal.Decimal         `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal         `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	Total          decimal.Decimal         `gorm:"column:total;type:numeric(12,2);not null"`
	LineItems      []QuoteLineItem         `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
