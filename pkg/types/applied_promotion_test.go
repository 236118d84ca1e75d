package types

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

func TestAppliedPromotionRoundTrip(t *testing.T) {
	t.Parallel()

	src := &AppliedPromotion{
		Code:   "SUMMER15",
		Kind:   enums.PromotionKindPercentage,
		Amount: decimal.NewFromInt(15),
		Source: enums.PromotionSourcePromoCode,
	}

	raw, err := src.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded AppliedPromotion
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if decoded.Code != "SUMMER15" || decoded.Kind != enums.PromotionKindPercentage {
		t.Fatalf("unexpected decode %+v", decoded)
	}
	if !decoded.Amount.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("value drifted: %s", decoded.Amount)
	}
}

func TestAppliedPromotionScanNil(t *testing.T) {
	t.Parallel()

	decoded := AppliedPromotion{Code: "stale"}
	if err := decoded.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if decoded.Code != "" {
		t.Fatalf("expected zeroed value, got %+v", decoded)
	}
}

func TestAppliedPromotionNilValue(t *testing.T) {
	t.Parallel()

	var promo *AppliedPromotion
	raw, err := promo.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if raw != nil {
		t.Fatalf("nil promo should persist as NULL, got %v", raw)
	}
}
