package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/internal/quote"
	"github.com/smileroute/smileroute-backend/pkg/db/models"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
)

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns finalized quote snapshots into durable quotes. It is the
// persistence collaborator behind the submission adapter.
type Service interface {
	CreateQuote(ctx context.Context, snapshot quote.Snapshot) (uuid.UUID, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
}

type service struct {
	repo *Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the quote persistence service.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// CreateQuote validates the snapshot and writes the quote with its line
// items in one transaction. Monetary values are rounded to cents here,
// at the persistence boundary; the engine keeps full precision.
func (s *service) CreateQuote(ctx context.Context, snapshot quote.Snapshot) (uuid.UUID, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return uuid.Nil, err
	}

	row := toQuoteRow(snapshot)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, row)
	})
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting quote")
	}

	ctx = s.logg.WithQuoteID(s.logg.WithSessionID(ctx, snapshot.SessionID.String()), row.ID.String())
	s.logg.Info(ctx, "quote persisted")
	return row.ID, nil
}

func (s *service) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return row, nil
}

func validateSnapshot(snapshot quote.Snapshot) error {
	if snapshot.SessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if len(snapshot.LineItems) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no treatments selected")
	}
	if strings.TrimSpace(snapshot.Patient.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "patient name required")
	}
	if strings.TrimSpace(snapshot.Patient.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "patient email required")
	}
	if snapshot.Total.IsNegative() || snapshot.DiscountAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "negative totals rejected")
	}
	return nil
}

func toQuoteRow(snapshot quote.Snapshot) *models.Quote {
	row := &models.Quote{
		ID:             uuid.New(),
		SessionID:      snapshot.SessionID,
		PatientName:    strings.TrimSpace(snapshot.Patient.Name),
		PatientEmail:   strings.TrimSpace(snapshot.Patient.Email),
		PatientNotes:   snapshot.Patient.Notes,
		Subtotal:       snapshot.Subtotal.Round(2),
		DiscountAmount: snapshot.DiscountAmount.Round(2),
		Total:          snapshot.Total.Round(2),
	}
	if country := strings.TrimSpace(snapshot.Patient.Country); country != "" {
		row.PatientCountry = &country
	}
	if snapshot.Promotion != nil {
		applied := snapshot.Promotion.Applied()
		row.Promotion = &applied
	}

	row.LineItems = make([]models.QuoteLineItem, len(snapshot.LineItems))
	for i, item := range snapshot.LineItems {
		row.LineItems[i] = models.QuoteLineItem{
			ID:          uuid.New(),
			QuoteID:     row.ID,
			TreatmentID: item.TreatmentID,
			Name:        item.Name,
			UnitPrice:   item.UnitPrice.Round(2),
			Quantity:    int(item.Quantity),
			LineTotal:   item.LineTotal().Round(2),
		}
	}
	return row
}
