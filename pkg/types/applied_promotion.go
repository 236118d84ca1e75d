package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

// AppliedPromotion is the promotion snapshot persisted on a submitted quote.
// Amount is the raw promotion value (a percentage for percentage kinds, a
// monetary amount for fixed kinds); the computed discount lives on the quote.
type AppliedPromotion struct {
	Code         string                `json:"code"`
	Kind         enums.PromotionKind   `json:"kind"`
	Amount       decimal.Decimal       `json:"value"`
	Source       enums.PromotionSource `json:"source"`
	SpecialPrice bool                  `json:"special_price"`
}

// Value serializes the promotion snapshot to JSON for a JSONB column.
func (a *AppliedPromotion) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan decodes a JSONB column into the promotion snapshot.
func (a *AppliedPromotion) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedPromotion{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
