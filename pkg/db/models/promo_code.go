package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// PromoCode is a user-enterable discount code. Codes are stored uppercase;
// lookups normalize input before comparing.
type PromoCode struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string              `gorm:"column:code;uniqueIndex;not null"`
	Kind      enums.PromotionKind `gorm:"column:kind;not null"`
	Value     decimal.Decimal     `gorm:"column:value;type:numeric(12,2);not null"`
	IsActive  bool                `gorm:"column:is_active;not null;default:true"`
	ExpiresAt *time.Time          `gorm:"column:expires_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsUsable reports whether the code is active and not expired.
func (p PromoCode) IsUsable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}
