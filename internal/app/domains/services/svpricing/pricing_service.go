package svpricing

import (
	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

// Policy 运费策略
type Policy struct {
	FreeShippingMinAmount decimal.Decimal // 免运费门槛
	StandardShippingCost  decimal.Decimal // 标准运费
}

// CartItem 计价用的购物车条目
type CartItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote 计价结果
type Quote struct {
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Calculator 计价服务（纯计算，无副作用）
type Calculator struct {
	policy Policy
}

// NewCalculator 创建计价服务
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// Subtotal 计算商品小计
func (c *Calculator) Subtotal(items []CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Quote 计算订单金额
// 运费按折扣前小计判定免邮门槛，折扣在运费之后扣减；
// 折扣导致实付为负时拒绝而不是静默截断为 0，让配置错误的折扣码显式暴露
func (c *Calculator) Quote(items []CartItem, discount decimal.Decimal) (*Quote, error) {
	subtotal := c.Subtotal(items)

	shipping := c.policy.StandardShippingCost
	if subtotal.Cmp(c.policy.FreeShippingMinAmount) >= 0 {
		shipping = decimal.Zero
	}

	final := subtotal.Add(shipping).Sub(discount)
	if final.IsNegative() {
		return nil, errorx.ErrDiscountExceedsTotal
	}

	return &Quote{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		FinalAmount:    final,
	}, nil
}
