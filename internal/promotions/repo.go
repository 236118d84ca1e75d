package promotions

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/internal/repo"
	"github.com/smileroute/smileroute-backend/pkg/db/models"
)

// Repository loads promotion catalog rows.
type Repository struct {
	repo.Base
}

// NewRepository constructs a promotions repository backed by GORM.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindPromoCodeByCode loads a promo code row by its normalized code.
func (r *Repository) FindPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var row models.PromoCode
	err := r.DB(ctx).Where("upper(code) = ?", strings.ToUpper(code)).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindSpecialOfferByID loads a clinic special offer by id.
func (r *Repository) FindSpecialOfferByID(ctx context.Context, id uuid.UUID) (*models.SpecialOffer, error) {
	var row models.SpecialOffer
	if err := r.DB(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindTreatmentPackageByID loads a treatment package by id.
func (r *Repository) FindTreatmentPackageByID(ctx context.Context, id uuid.UUID) (*models.TreatmentPackage, error) {
	var row models.TreatmentPackage
	if err := r.DB(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
