package etorder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

// DiscountCode 折扣码（领域对象）
type DiscountCode struct {
	Code           string
	Amount         decimal.Decimal
	MinOrderAmount decimal.Decimal
	UsageLimit     int // 0 表示不限次数
	UsedCount      int
	ExpiresAt      *time.Time
	Active         bool
}

// ValidateFor 校验折扣码对给定小计是否可用
func (d *DiscountCode) ValidateFor(subtotal decimal.Decimal, now time.Time) error {
	if !d.Active {
		return errorx.ErrDiscountNotFound
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return errorx.ErrDiscountExpired
	}
	if d.UsageLimit > 0 && d.UsedCount >= d.UsageLimit {
		return errorx.ErrDiscountExhausted
	}
	if subtotal.Cmp(d.MinOrderAmount) < 0 {
		return errorx.ErrDiscountBelowMin
	}
	return nil
}
