package promotions

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/pkg/db/models"
	"github.com/smileroute/smileroute-backend/pkg/enums"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
	"github.com/smileroute/smileroute-backend/pkg/redis"
)

type stubCatalog struct {
	codes     map[string]*models.PromoCode
	offers    map[uuid.UUID]*models.SpecialOffer
	packages  map[uuid.UUID]*models.TreatmentPackage
	codeCalls int
}

func (s *stubCatalog) FindPromoCodeByCode(_ context.Context, code string) (*models.PromoCode, error) {
	s.codeCalls++
	if row, ok := s.codes[code]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalog) FindSpecialOfferByID(_ context.Context, id uuid.UUID) (*models.SpecialOffer, error) {
	if row, ok := s.offers[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalog) FindTreatmentPackageByID(_ context.Context, id uuid.UUID) (*models.TreatmentPackage, error) {
	if row, ok := s.packages[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCache struct {
	entries map[string]string
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.entries[key]; ok {
		return v, nil
	}
	return "", redis.ErrNotFound
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if s.entries == nil {
		s.entries = map[string]string{}
	}
	s.entries[key] = value.(string)
	return nil
}

func (s *stubCache) PromoCodeKey(code string) string {
	return "test:promo_code:" + code
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, catalog *stubCatalog, cache promoCache) *Service {
	t.Helper()
	svc, err := NewService(catalog, cache, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestResolveByCodeNormalizesInput(t *testing.T) {
	t.Parallel()

	catalog := &stubCatalog{codes: map[string]*models.PromoCode{
		"SUMMER15": {
			Code:     "SUMMER15",
			Kind:     enums.PromotionKindPercentage,
			Value:    decimal.NewFromInt(15),
			IsActive: true,
		},
	}}
	svc := newTestService(t, catalog, nil)

	promo, err := svc.ResolveByCode(context.Background(), "  summer15 ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if promo.Code != "SUMMER15" || promo.Kind != enums.PromotionKindPercentage {
		t.Fatalf("unexpected promotion %+v", promo)
	}
	if promo.Source != enums.PromotionSourcePromoCode {
		t.Fatalf("source = %s, want promo_code", promo.Source)
	}
	if promo.SpecialPrice {
		t.Fatal("promo codes never flag special price")
	}
}

func TestResolveByCodeUnknownIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalog{}, nil)

	_, err := svc.ResolveByCode(context.Background(), "NOPE")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveByCodeExpiredIsNotFound(t *testing.T) {
	t.Parallel()

	expired := time.Now().Add(-time.Hour)
	catalog := &stubCatalog{codes: map[string]*models.PromoCode{
		"OLD10": {
			Code:      "OLD10",
			Kind:      enums.PromotionKindPercentage,
			Value:     decimal.NewFromInt(10),
			IsActive:  true,
			ExpiresAt: &expired,
		},
	}}
	svc := newTestService(t, catalog, nil)

	_, err := svc.ResolveByCode(context.Background(), "OLD10")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for expired code, got %v", err)
	}
}

func TestResolveByCodeEmptyIsValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalog{}, nil)

	_, err := svc.ResolveByCode(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveByCodeReadThroughCache(t *testing.T) {
	t.Parallel()

	catalog := &stubCatalog{codes: map[string]*models.PromoCode{
		"WINTER20": {
			Code:     "WINTER20",
			Kind:     enums.PromotionKindFixedAmount,
			Value:    decimal.NewFromInt(20),
			IsActive: true,
		},
	}}
	cache := &stubCache{}
	svc := newTestService(t, catalog, cache)

	if _, err := svc.ResolveByCode(context.Background(), "winter20"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	promo, err := svc.ResolveByCode(context.Background(), "WINTER20")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if catalog.codeCalls != 1 {
		t.Fatalf("catalog hit %d times, want 1 (second read from cache)", catalog.codeCalls)
	}
	if !promo.Value.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("cached value drifted: %s", promo.Value)
	}
}

func TestResolveByTokenSetsSource(t *testing.T) {
	t.Parallel()

	catalog := &stubCatalog{codes: map[string]*models.PromoCode{
		"REF-ABC": {
			Code:     "REF-ABC",
			Kind:     enums.PromotionKindPercentage,
			Value:    decimal.NewFromInt(5),
			IsActive: true,
		},
	}}
	svc := newTestService(t, catalog, nil)

	promo, err := svc.ResolveByToken(context.Background(), "ref-abc")
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if promo.Source != enums.PromotionSourcePromoToken {
		t.Fatalf("source = %s, want promo_token", promo.Source)
	}
}

func TestResolveByPromotionIDZeroValueIsSpecialPrice(t *testing.T) {
	t.Parallel()

	offerID := uuid.New()
	catalog := &stubCatalog{offers: map[uuid.UUID]*models.SpecialOffer{
		offerID: {
			ID:            offerID,
			Title:         "Implant Consult",
			DiscountKind:  enums.PromotionKindFixedAmount,
			DiscountValue: decimal.Zero,
			IsActive:      true,
		},
	}}
	svc := newTestService(t, catalog, nil)

	promo, err := svc.ResolveByPromotionID(context.Background(), offerID, enums.PromotionSourceSpecialOffer)
	if err != nil {
		t.Fatalf("resolve offer: %v", err)
	}
	if !promo.SpecialPrice {
		t.Fatal("zero-value offer should be flagged as special price")
	}
	if !promo.Value.IsZero() {
		t.Fatalf("value = %s, want 0", promo.Value)
	}
}

func TestResolveByPromotionIDPackage(t *testing.T) {
	t.Parallel()

	packID := uuid.New()
	catalog := &stubCatalog{packages: map[uuid.UUID]*models.TreatmentPackage{
		packID: {
			ID:            packID,
			Title:         "Smile Makeover",
			DiscountKind:  enums.PromotionKindPercentage,
			DiscountValue: decimal.NewFromInt(25),
			IsActive:      true,
		},
	}}
	svc := newTestService(t, catalog, nil)

	promo, err := svc.ResolveByPromotionID(context.Background(), packID, enums.PromotionSourceTreatmentPackage)
	if err != nil {
		t.Fatalf("resolve package: %v", err)
	}
	if promo.Source != enums.PromotionSourceTreatmentPackage {
		t.Fatalf("source = %s", promo.Source)
	}
	if promo.SpecialPrice {
		t.Fatal("non-zero package discount should not flag special price")
	}
}

func TestResolveByPromotionIDInactiveIsNotFound(t *testing.T) {
	t.Parallel()

	offerID := uuid.New()
	catalog := &stubCatalog{offers: map[uuid.UUID]*models.SpecialOffer{
		offerID: {ID: offerID, Title: "Old Offer", DiscountKind: enums.PromotionKindPercentage, DiscountValue: decimal.NewFromInt(10)},
	}}
	svc := newTestService(t, catalog, nil)

	_, err := svc.ResolveByPromotionID(context.Background(), offerID, enums.PromotionSourceSpecialOffer)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive offer, got %v", err)
	}
}

func TestResolveByPromotionIDRejectsOtherSources(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalog{}, nil)

	_, err := svc.ResolveByPromotionID(context.Background(), uuid.New(), enums.PromotionSourcePromoCode)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
