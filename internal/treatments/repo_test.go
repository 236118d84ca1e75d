package treatments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/pkg/db/models"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	pkgpagination "github.com/smileroute/smileroute-backend/pkg/pagination"
)

func setupTreatmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS treatments (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  unit_price TEXT NOT NULL,
  tags TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func createTreatment(t *testing.T, db *gorm.DB, name string, price string, created time.Time, active bool) *models.Treatment {
	t.Helper()

	row := &models.Treatment{
		ID:        uuid.New(),
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  active,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRepositoryListSkipsInactive(t *testing.T) {
	db := setupTreatmentsTestDB(t)
	repo := NewRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	createTreatment(t, db, "Crown", "450.00", base, true)
	createTreatment(t, db, "Retired Whitening", "99.00", base.Add(time.Minute), false)

	rows, err := repo.List(context.Background(), listQuery{limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Crown", rows[0].Name)
}

func TestRepositoryListCursorPagination(t *testing.T) {
	db := setupTreatmentsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)

	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"Crown", "Veneer", "Implant", "Whitening", "Filling"}
	for i, name := range names {
		createTreatment(t, db, name, "100.00", base.Add(time.Duration(i)*time.Minute), true)
	}

	first, err := svc.ListTreatments(context.Background(), ListParams{Params: pkgpagination.Params{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.Cursor)
	// Newest first.
	assert.Equal(t, "Filling", first.Items[0].Name)
	assert.Equal(t, "Whitening", first.Items[1].Name)

	second, err := svc.ListTreatments(context.Background(), ListParams{Params: pkgpagination.Params{Limit: 2, Cursor: first.Cursor}})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "Implant", second.Items[0].Name)
	assert.Equal(t, "Veneer", second.Items[1].Name)

	third, err := svc.ListTreatments(context.Background(), ListParams{Params: pkgpagination.Params{Limit: 2, Cursor: second.Cursor}})
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Equal(t, "Crown", third.Items[0].Name)
	assert.Empty(t, third.Cursor)
}

func TestServiceListRejectsBadCursor(t *testing.T) {
	db := setupTreatmentsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.ListTreatments(context.Background(), ListParams{Params: pkgpagination.Params{Cursor: "!!"}})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceGetTreatment(t *testing.T) {
	db := setupTreatmentsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	created := createTreatment(t, db, "Crown", "450.00", time.Now().UTC(), true)
	inactive := createTreatment(t, db, "Retired", "10.00", time.Now().UTC(), false)

	row, err := svc.GetTreatment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crown", row.Name)
	assert.True(t, row.UnitPrice.Equal(decimal.RequireFromString("450.00")))

	_, err = svc.GetTreatment(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = svc.GetTreatment(context.Background(), inactive.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
