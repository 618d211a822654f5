package rporder

import (
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/common/entity"
)

// toOrderPO 领域对象转 GORM 模型
func toOrderPO(order *etorder.Order) *entity.Order {
	po := &entity.Order{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		Subtotal:       order.Subtotal,
		ShippingCost:   order.ShippingCost,
		DiscountAmount: order.DiscountAmount,
		FinalAmount:    order.FinalAmount,
		NotifiedAt:     order.NotifiedAt,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	if order.DiscountCode != "" {
		code := order.DiscountCode
		po.DiscountCode = &code
	}
	if order.IdempotencyKey != "" {
		key := order.IdempotencyKey
		po.IdempotencyKey = &key
	}
	return po
}

func toCustomerPO(order *etorder.Order) *entity.OrderCustomer {
	return &entity.OrderCustomer{
		OrderID: order.ID,
		Name:    order.Customer.Name,
		Email:   order.Customer.Email,
		Phone:   order.Customer.Phone,
	}
}

func toShippingPO(order *etorder.Order) *entity.OrderShipping {
	return &entity.OrderShipping{
		OrderID:       order.ID,
		RecipientName: order.Shipping.RecipientName,
		Phone:         order.Shipping.Phone,
		Address:       order.Shipping.Address,
		Province:      order.Shipping.Province,
		PostalCode:    order.Shipping.PostalCode,
		DeliveryDate:  order.Shipping.DeliveryDate,
		DeliveryTime:  order.Shipping.DeliveryTime,
		CardMessage:   order.Shipping.CardMessage,
	}
}

func toItemPOs(order *etorder.Order) []*entity.OrderItem {
	items := make([]*entity.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &entity.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return items
}

func toPaymentPO(order *etorder.Order) *entity.PaymentInfo {
	po := &entity.PaymentInfo{
		OrderID:     order.ID,
		Method:      string(order.Payment.Method),
		Status:      string(order.Payment.Status),
		PaymentDate: order.Payment.PaymentDate,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if order.Payment.TransactionID != "" {
		txn := order.Payment.TransactionID
		po.TransactionID = &txn
	}
	return po
}

// toOrderDomain GORM 模型转领域对象
func toOrderDomain(
	po *entity.Order,
	customer *entity.OrderCustomer,
	shipping *entity.OrderShipping,
	items []entity.OrderItem,
	payment *entity.PaymentInfo,
) *etorder.Order {
	order := &etorder.Order{
		ID:             po.ID,
		OrderNumber:    po.OrderNumber,
		Status:         etorder.OrderStatus(po.Status),
		PaymentStatus:  etorder.PaymentStatus(po.PaymentStatus),
		Subtotal:       po.Subtotal,
		ShippingCost:   po.ShippingCost,
		DiscountAmount: po.DiscountAmount,
		FinalAmount:    po.FinalAmount,
		NotifiedAt:     po.NotifiedAt,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
	if po.DiscountCode != nil {
		order.DiscountCode = *po.DiscountCode
	}
	if po.IdempotencyKey != nil {
		order.IdempotencyKey = *po.IdempotencyKey
	}

	order.Customer = &etorder.CustomerInfo{
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	}
	order.Shipping = &etorder.ShippingInfo{
		RecipientName: shipping.RecipientName,
		Phone:         shipping.Phone,
		Address:       shipping.Address,
		Province:      shipping.Province,
		PostalCode:    shipping.PostalCode,
		DeliveryDate:  shipping.DeliveryDate,
		DeliveryTime:  shipping.DeliveryTime,
		CardMessage:   shipping.CardMessage,
	}

	order.Items = make([]*etorder.OrderItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, &etorder.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	if payment != nil {
		order.Payment = &etorder.PaymentInfo{
			Method:      etorder.PaymentMethod(payment.Method),
			Status:      etorder.PaymentStatus(payment.Status),
			PaymentDate: payment.PaymentDate,
		}
		if payment.TransactionID != nil {
			order.Payment.TransactionID = *payment.TransactionID
		}
	}

	return order
}

func toDiscountDomain(po *entity.DiscountCode) *etorder.DiscountCode {
	return &etorder.DiscountCode{
		Code:           po.Code,
		Amount:         po.Amount,
		MinOrderAmount: po.MinOrderAmount,
		UsageLimit:     po.UsageLimit,
		UsedCount:      po.UsedCount,
		ExpiresAt:      po.ExpiresAt,
		Active:         po.Active,
	}
}
