package response

import (
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svcheckout"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
)

// FromCheckoutResult 结账结果转响应
func FromCheckoutResult(result *svcheckout.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Order:       FromOrderEntity(result.Order),
		RedirectURL: result.RedirectURL,
		Replayed:    result.Replayed,
	}
}

// FromOrderEntity 订单聚合转响应
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	items := make([]*OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
		})
	}

	resp := &OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		Subtotal:       order.Subtotal.StringFixed(2),
		ShippingCost:   order.ShippingCost.StringFixed(2),
		DiscountAmount: order.DiscountAmount.StringFixed(2),
		DiscountCode:   order.DiscountCode,
		FinalAmount:    order.FinalAmount.StringFixed(2),
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	if order.Payment != nil {
		resp.PaymentMethod = string(order.Payment.Method)
	}
	return resp
}

// FromReconcileResult 对账结果转响应
func FromReconcileResult(result *svpayment.Result) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		Status:      string(result.Status),
		OrderNumber: result.OrderNumber,
	}
}

// FromConfirmationEntity 凭证转响应
func FromConfirmationEntity(confirmation *etpayment.PaymentConfirmation) *ConfirmationResponse {
	return &ConfirmationResponse{
		ID:          confirmation.ID,
		OrderNumber: confirmation.OrderNumber,
		Amount:      confirmation.Amount.StringFixed(2),
		BankName:    confirmation.BankName,
		Status:      string(confirmation.Status),
		CreatedAt:   confirmation.CreatedAt,
	}
}
