package treatments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/db/models"
	pkgpagination "github.com/smileroute/smileroute-backend/pkg/pagination"
)

type ListParams struct {
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type listQuery struct {
	limit  int
	cursor *pkgpagination.Cursor
}

func toListItem(m models.Treatment) ListItem {
	return ListItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
