package promotions

import (
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
	"github.com/smileroute/smileroute-backend/pkg/types"
)

// Promotion is a resolved discount ready to be applied to a quote. At most
// one promotion is active per quote; applying another replaces it.
type Promotion struct {
	Code         string
	Kind         enums.PromotionKind
	Value        decimal.Decimal
	Source       enums.PromotionSource
	SpecialPrice bool
}

// Applied converts the resolved promotion into its persisted representation.
func (p Promotion) Applied() types.AppliedPromotion {
	return types.AppliedPromotion{
		Code:         p.Code,
		Kind:         p.Kind,
		Amount:       p.Value,
		Source:       p.Source,
		SpecialPrice: p.SpecialPrice,
	}
}
