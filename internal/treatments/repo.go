package treatments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/internal/repo"
	"github.com/smileroute/smileroute-backend/pkg/db/models"
)

// Repository exposes treatment catalog persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a treatments repository backed by GORM.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns active treatments using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Treatment, error) {
	query := r.DB(ctx).Model(&models.Treatment{}).Where("is_active = ?", true)

	if opts.cursor != nil {
		// Cursor marks the first row of the requested page, so the
		// comparison is inclusive on the tie-breaker.
		query = query.Where("(created_at < ?) OR (created_at = ? AND id <= ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Treatment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single treatment row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var row models.Treatment
	if err := r.DB(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
