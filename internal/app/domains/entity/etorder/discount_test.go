package etorder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

func TestDiscountValidateFor(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		discount DiscountCode
		subtotal decimal.Decimal
		wantErr  error
	}{
		{
			name:     "valid",
			discount: DiscountCode{Code: "WELCOME100", Amount: decimal.NewFromInt(100), MinOrderAmount: decimal.NewFromInt(500), UsageLimit: 10, UsedCount: 3, ExpiresAt: &future, Active: true},
			subtotal: decimal.NewFromInt(1000),
		},
		{
			name:     "inactive",
			discount: DiscountCode{Code: "OLD", Amount: decimal.NewFromInt(100), Active: false},
			subtotal: decimal.NewFromInt(1000),
			wantErr:  errorx.ErrDiscountNotFound,
		},
		{
			name:     "expired",
			discount: DiscountCode{Code: "EXP", Amount: decimal.NewFromInt(100), ExpiresAt: &expired, Active: true},
			subtotal: decimal.NewFromInt(1000),
			wantErr:  errorx.ErrDiscountExpired,
		},
		{
			name:     "exhausted",
			discount: DiscountCode{Code: "FULL", Amount: decimal.NewFromInt(100), UsageLimit: 5, UsedCount: 5, Active: true},
			subtotal: decimal.NewFromInt(1000),
			wantErr:  errorx.ErrDiscountExhausted,
		},
		{
			name:     "below minimum",
			discount: DiscountCode{Code: "BIG", Amount: decimal.NewFromInt(100), MinOrderAmount: decimal.NewFromInt(2000), Active: true},
			subtotal: decimal.NewFromInt(1000),
			wantErr:  errorx.ErrDiscountBelowMin,
		},
		{
			name:     "unlimited usage",
			discount: DiscountCode{Code: "EVERGREEN", Amount: decimal.NewFromInt(50), UsageLimit: 0, UsedCount: 99999, Active: true},
			subtotal: decimal.NewFromInt(1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.discount.ValidateFor(tt.subtotal, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
