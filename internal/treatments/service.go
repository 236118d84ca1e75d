package treatments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/pkg/db/models"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	pkgpagination "github.com/smileroute/smileroute-backend/pkg/pagination"
)

type treatmentsRepository interface {
	List(ctx context.Context, opts listQuery) ([]models.Treatment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
}

// Service exposes the treatment catalog read surface.
type Service interface {
	ListTreatments(ctx context.Context, params ListParams) (*ListResult, error)
	GetTreatment(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
}

type service struct {
	repo treatmentsRepository
}

// NewService builds the treatment catalog service.
func NewService(repo treatmentsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("treatments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListTreatments(ctx context.Context, params ListParams) (*ListResult, error) {
	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{limit: pkgpagination.LimitWithBuffer(params.Limit)}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list treatments")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = toListItem(row)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) GetTreatment(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "treatment id required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "treatment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load treatment")
	}
	if !row.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "treatment not found")
	}
	return row, nil
}
