package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", value, err)
	}
	return d
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{UnitPrice: dec(t, "250.00"), Quantity: 2},
		{UnitPrice: dec(t, "1200.00"), Quantity: 1},
	}

	if got := Subtotal(lines); !got.Equal(dec(t, "1700.00")) {
		t.Fatalf("subtotal = %s, want 1700.00", got)
	}
}

func TestSubtotalEmptyLines(t *testing.T) {
	t.Parallel()

	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("subtotal of no lines = %s, want 0", got)
	}
}

func TestSubtotalKeepsFullPrecision(t *testing.T) {
	t.Parallel()

	lines := []Line{{UnitPrice: dec(t, "33.33"), Quantity: 3}}
	if got := Subtotal(lines); !got.Equal(dec(t, "99.99")) {
		t.Fatalf("subtotal = %s, want 99.99", got)
	}
}

func TestLineTotalIgnoresNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	if got := LineTotal(Line{UnitPrice: dec(t, "100"), Quantity: 0}); !got.IsZero() {
		t.Fatalf("line total = %s, want 0", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		subtotal string
		kind     enums.PromotionKind
		value    string
		want     string
	}{
		{"percentage", "1700", enums.PromotionKindPercentage, "10", "170"},
		{"percentage fractional", "333.33", enums.PromotionKindPercentage, "15", "49.9995"},
		{"percentage over one hundred clamps", "200", enums.PromotionKindPercentage, "150", "200"},
		{"fixed", "1700", enums.PromotionKindFixedAmount, "300", "300"},
		{"fixed exceeding subtotal clamps", "100", enums.PromotionKindFixedAmount, "250", "100"},
		{"zero value", "1700", enums.PromotionKindPercentage, "0", "0"},
		{"zero subtotal", "0", enums.PromotionKindFixedAmount, "50", "0"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := DiscountAmount(dec(t, tc.subtotal), tc.kind, dec(t, tc.value))
			if !got.Equal(dec(t, tc.want)) {
				t.Fatalf("discount = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDiscountAmountUnknownKind(t *testing.T) {
	t.Parallel()

	got := DiscountAmount(dec(t, "100"), enums.PromotionKind("bogus"), dec(t, "10"))
	if !got.IsZero() {
		t.Fatalf("discount = %s, want 0 for unknown kind", got)
	}
}

func TestTotalNeverNegative(t *testing.T) {
	t.Parallel()

	if got := Total(dec(t, "100"), dec(t, "100")); !got.IsZero() {
		t.Fatalf("total = %s, want 0", got)
	}
	if got := Total(dec(t, "50"), dec(t, "80")); !got.IsZero() {
		t.Fatalf("total = %s, want clamp to 0", got)
	}
	if got := Total(dec(t, "1700"), dec(t, "170")); !got.Equal(dec(t, "1530")) {
		t.Fatalf("total = %s, want 1530", got)
	}
}
