package enums

import "fmt"

// PromotionSource records where an applied promotion came from. It is
// attribution metadata only and never changes the discount arithmetic.
type PromotionSource string

const (
	PromotionSourcePromoCode        PromotionSource = "promo_code"
	PromotionSourceSpecialOffer     PromotionSource = "special_offer"
	PromotionSourceTreatmentPackage PromotionSource = "treatment_package"
	PromotionSourcePromoToken       PromotionSource = "promo_token"
)

var validPromotionSources = []PromotionSource{
	PromotionSourcePromoCode,
	PromotionSourceSpecialOffer,
	PromotionSourceTreatmentPackage,
	PromotionSourcePromoToken,
}

// String implements fmt.Stringer.
func (p PromotionSource) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromotionSource.
func (p PromotionSource) IsValid() bool {
	for _, candidate := range validPromotionSources {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionSource converts raw input into a PromotionSource.
func ParsePromotionSource(value string) (PromotionSource, error) {
	for _, candidate := range validPromotionSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion source %q", value)
}
