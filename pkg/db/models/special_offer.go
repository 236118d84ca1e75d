package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// SpecialOffer is a clinic-defined promotional catalog entry. A discount
// value of exactly zero is still a valid offer; it is presented as
// "special price" rather than a numeric discount.
type SpecialOffer struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClinicID      uuid.UUID           `gorm:"column:clinic_id;type:uuid;not null"`
	Title         string              `gorm:"column:title;not null"`
	DiscountKind  enums.PromotionKind `gorm:"column:discount_kind;not null"`
	DiscountValue decimal.Decimal     `gorm:"column:discount_value;type:numeric(12,2);not null"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
