package svpricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

func testCalculator() *Calculator {
	return NewCalculator(Policy{
		FreeShippingMinAmount: decimal.NewFromInt(1500),
		StandardShippingCost:  decimal.NewFromInt(100),
	})
}

func TestQuoteShipping(t *testing.T) {
	calc := testCalculator()

	tests := []struct {
		name         string
		items        []CartItem
		discount     decimal.Decimal
		wantShipping string
		wantFinal    string
	}{
		{
			name:         "below threshold pays shipping",
			items:        []CartItem{{UnitPrice: decimal.NewFromInt(1200), Quantity: 1}},
			discount:     decimal.Zero,
			wantShipping: "100",
			wantFinal:    "1300",
		},
		{
			name:         "at threshold ships free",
			items:        []CartItem{{UnitPrice: decimal.NewFromInt(1500), Quantity: 1}},
			discount:     decimal.Zero,
			wantShipping: "0",
			wantFinal:    "1500",
		},
		{
			name:         "above threshold ships free",
			items:        []CartItem{{UnitPrice: decimal.NewFromInt(800), Quantity: 2}},
			discount:     decimal.Zero,
			wantShipping: "0",
			wantFinal:    "1600",
		},
		{
			name:         "discount applied after shipping",
			items:        []CartItem{{UnitPrice: decimal.NewFromInt(1000), Quantity: 1}},
			discount:     decimal.NewFromInt(200),
			wantShipping: "100",
			wantFinal:    "900",
		},
		{
			name: "discount does not unlock free shipping threshold",
			// 免邮门槛按折扣前小计判定
			items:        []CartItem{{UnitPrice: decimal.NewFromInt(1600), Quantity: 1}},
			discount:     decimal.NewFromInt(500),
			wantShipping: "0",
			wantFinal:    "1100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := calc.Quote(tt.items, tt.discount)
			require.NoError(t, err)
			assert.True(t, quote.ShippingCost.Equal(decimal.RequireFromString(tt.wantShipping)),
				"shipping = %s, want %s", quote.ShippingCost, tt.wantShipping)
			assert.True(t, quote.FinalAmount.Equal(decimal.RequireFromString(tt.wantFinal)),
				"final = %s, want %s", quote.FinalAmount, tt.wantFinal)
		})
	}
}

func TestQuoteRejectsNegativeFinal(t *testing.T) {
	calc := testCalculator()

	_, err := calc.Quote(
		[]CartItem{{UnitPrice: decimal.NewFromInt(100), Quantity: 1}},
		decimal.NewFromInt(500),
	)
	assert.ErrorIs(t, err, errorx.ErrDiscountExceedsTotal)
}

func TestSubtotal(t *testing.T) {
	calc := testCalculator()

	subtotal := calc.Subtotal([]CartItem{
		{UnitPrice: decimal.RequireFromString("1290.50"), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(350), Quantity: 1},
	})
	assert.True(t, subtotal.Equal(decimal.RequireFromString("2931.00")), "subtotal = %s", subtotal)
}
