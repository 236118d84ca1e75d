package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/internal/repo"
	"github.com/smileroute/smileroute-backend/pkg/db/models"
)

// Repository persists submitted quotes and their line items.
type Repository struct {
	repo.Base
}

// NewRepository constructs a quotes repository backed by GORM.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// Create inserts the quote together with its line items.
func (r *Repository) Create(ctx context.Context, row *models.Quote) error {
	return r.DB(ctx).Create(row).Error
}

// FindByID loads a quote with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var row models.Quote
	if err := r.DB(ctx).Preload("LineItems").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
