package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// TreatmentPackage bundles treatments under a package-level discount.
type TreatmentPackage struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClinicID      uuid.UUID           `gorm:"column:clinic_id;type:uuid;not null"`
	Title         string              `gorm:"column:title;not null"`
	TreatmentIDs  pq.StringArray      `gorm:"column:treatment_ids;type:text[]"`
	DiscountKind  enums.PromotionKind `gorm:"column:discount_kind;not null"`
	DiscountValue decimal.Decimal     `gorm:"column:discount_value;type:numeric(12,2);not null"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
