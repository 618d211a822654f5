package request

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svcheckout"
)

// ToCheckoutInput 请求模型转结账入参
// 金额字段以字符串承载，这里统一解析为 decimal
func (r *CheckoutRequest) ToCheckoutInput(idempotencyKey string) (*svcheckout.CheckoutInput, error) {
	items := make([]svcheckout.CheckoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price for product %s: %s", item.ProductID, item.UnitPrice)
		}
		items = append(items, svcheckout.CheckoutItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   price,
			Quantity:    item.Quantity,
		})
	}

	shipping := &etorder.ShippingInfo{
		RecipientName: r.Shipping.RecipientName,
		Phone:         r.Shipping.Phone,
		Address:       r.Shipping.Address,
		Province:      r.Shipping.Province,
		PostalCode:    r.Shipping.PostalCode,
		DeliveryTime:  r.Shipping.DeliveryTime,
		CardMessage:   r.Shipping.CardMessage,
	}
	if r.Shipping.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", r.Shipping.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %s", r.Shipping.DeliveryDate)
		}
		shipping.DeliveryDate = &d
	}

	return &svcheckout.CheckoutInput{
		Customer: &etorder.CustomerInfo{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Shipping:       shipping,
		Items:          items,
		PaymentMethod:  etorder.PaymentMethod(r.PaymentMethod),
		DiscountCode:   r.DiscountCode,
		IdempotencyKey: idempotencyKey,
		ChargeID:       r.ChargeID,
	}, nil
}
