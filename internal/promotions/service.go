package promotions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smileroute/smileroute-backend/pkg/db/models"
	"github.com/smileroute/smileroute-backend/pkg/enums"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
	"github.com/smileroute/smileroute-backend/pkg/redis"
)

// catalog is the persistence surface the resolver needs.
type catalog interface {
	FindPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error)
	FindSpecialOfferByID(ctx context.Context, id uuid.UUID) (*models.SpecialOffer, error)
	FindTreatmentPackageByID(ctx context.Context, id uuid.UUID) (*models.TreatmentPackage, error)
}

// promoCache is the read-through cache surface for resolved codes.
type promoCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PromoCodeKey(code string) string
}

// Service resolves user-supplied codes and catalog-selected offer or
// package ids into concrete promotions. Lookups have no side effects on
// quote state; a miss is a typed not-found error, never a zero promotion.
type Service struct {
	catalog  catalog
	cache    promoCache
	logg     *logger.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService wires the promotion resolver. The cache is optional; when nil
// every lookup goes straight to the catalog.
func NewService(catalog catalog, cache promoCache, logg *logger.Logger, cacheTTL time.Duration) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		catalog:  catalog,
		cache:    cache,
		logg:     logg,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}, nil
}

// NormalizeCode uppercases and trims a user-entered promotion code so
// comparisons are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ResolveByCode translates a user-entered code into a promotion. Unknown,
// inactive, and expired codes all resolve to a not-found error.
func (s *Service) ResolveByCode(ctx context.Context, code string) (*Promotion, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion code is required")
	}

	if cached, ok := s.cachedCode(ctx, normalized); ok {
		return cached, nil
	}

	promo, err := s.lookupCode(ctx, normalized, enums.PromotionSourcePromoCode)
	if err != nil {
		return nil, err
	}

	s.storeCode(ctx, normalized, promo)
	return promo, nil
}

// ResolveByToken resolves a system-assigned referral token. Tokens share
// the promo-code catalog but carry their own attribution source and are
// never served from the code cache.
func (s *Service) ResolveByToken(ctx context.Context, token string) (*Promotion, error) {
	normalized := NormalizeCode(token)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion token is required")
	}
	return s.lookupCode(ctx, normalized, enums.PromotionSourcePromoToken)
}

// ResolveByPromotionID resolves a catalog-selected special offer or
// treatment package. A discount value of exactly zero still yields a valid
// promotion; it is flagged as a special price instead of a numeric discount.
func (s *Service) ResolveByPromotionID(ctx context.Context, id uuid.UUID, source enums.PromotionSource) (*Promotion, error) {
	switch source {
	case enums.PromotionSourceSpecialOffer:
		offer, err := s.catalog.FindSpecialOfferByID(ctx, id)
		if err != nil {
			return nil, s.mapLookupErr(err, "special offer not found")
		}
		if !offer.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "special offer not found")
		}
		return &Promotion{
			Code:         offer.Title,
			Kind:         offer.DiscountKind,
			Value:        offer.DiscountValue,
			Source:       enums.PromotionSourceSpecialOffer,
			SpecialPrice: offer.DiscountValue.IsZero(),
		}, nil

	case enums.PromotionSourceTreatmentPackage:
		pack, err := s.catalog.FindTreatmentPackageByID(ctx, id)
		if err != nil {
			return nil, s.mapLookupErr(err, "treatment package not found")
		}
		if !pack.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "treatment package not found")
		}
		return &Promotion{
			Code:         pack.Title,
			Kind:         pack.DiscountKind,
			Value:        pack.DiscountValue,
			Source:       enums.PromotionSourceTreatmentPackage,
			SpecialPrice: pack.DiscountValue.IsZero(),
		}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion kind must be special_offer or treatment_package")
	}
}

func (s *Service) lookupCode(ctx context.Context, normalized string, source enums.PromotionSource) (*Promotion, error) {
	row, err := s.catalog.FindPromoCodeByCode(ctx, normalized)
	if err != nil {
		return nil, s.mapLookupErr(err, "promotion code not found")
	}
	if !row.IsUsable(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion code not found")
	}
	return &Promotion{
		Code:   NormalizeCode(row.Code),
		Kind:   row.Kind,
		Value:  row.Value,
		Source: source,
	}, nil
}

func (s *Service) mapLookupErr(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading promotion")
}

func (s *Service) cachedCode(ctx context.Context, normalized string) (*Promotion, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.PromoCodeKey(normalized))
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "code", normalized), "promo cache read failed")
		}
		return nil, false
	}

	var promo Promotion
	if err := json.Unmarshal([]byte(raw), &promo); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "code", normalized), "promo cache entry corrupt")
		return nil, false
	}
	return &promo, true
}

func (s *Service) storeCode(ctx context.Context, normalized string, promo *Promotion) {
	if s.cache == nil || promo == nil {
		return
	}
	raw, err := json.Marshal(promo)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.PromoCodeKey(normalized), string(raw), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "code", normalized), "promo cache write failed")
	}
}
