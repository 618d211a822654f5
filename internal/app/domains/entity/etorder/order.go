package etorder

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// 错误定义
var (
	ErrInvalidOrderID      = errors.New("order ID cannot be empty")
	ErrInvalidOrderNumber  = errors.New("order number cannot be empty")
	ErrNilCustomer         = errors.New("customer info is required")
	ErrNilShipping         = errors.New("shipping info is required")
	ErrEmptyItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be at least 1")
	ErrInvalidUnitPrice    = errors.New("item unit price must not be negative")
	ErrNegativeFinalAmount = errors.New("final amount must not be negative")
	ErrPaymentRejected     = errors.New("payment already rejected")
	ErrOrderFulfilled      = errors.New("order already fulfilled")
)

// Order 订单聚合根（领域对象）
type Order struct {
	ID             string          // 订单ID (UUID)
	OrderNumber    string          // 订单号，全局唯一，分配后不可变
	Status         OrderStatus     // 订单状态
	PaymentStatus  PaymentStatus   // 支付状态，只允许向前流转
	Subtotal       decimal.Decimal // 商品小计
	ShippingCost   decimal.Decimal // 运费
	DiscountAmount decimal.Decimal // 折扣金额
	DiscountCode   string          // 折扣码（可为空）
	FinalAmount    decimal.Decimal // 实付金额 = subtotal + shipping - discount
	IdempotencyKey string          // 幂等键（可为空）
	Customer       *CustomerInfo   // 客户信息快照
	Shipping       *ShippingInfo   // 收货信息快照
	Items          []*OrderItem    // 订单明细
	Payment        *PaymentInfo    // 支付信息（至多一条）
	NotifiedAt     *time.Time      // 支付完成通知发送标记
	CreatedAt      time.Time       // 创建时间
	UpdatedAt      time.Time       // 更新时间
}

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"          // 托管收银台跳转支付
	PaymentMethodPromptPay    PaymentMethod = "PROMPTPAY"     // 页内直连扣款
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER" // 银行转账凭证
)

// CustomerInfo 客户信息（下单时快照，值对象）
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// ShippingInfo 收货信息（值对象）
type ShippingInfo struct {
	RecipientName string
	Phone         string
	Address       string
	Province      string
	PostalCode    string
	DeliveryDate  *time.Time
	DeliveryTime  string
	CardMessage   string
}

// OrderItem 订单明细（值对象），单价为下单时快照
type OrderItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// PaymentInfo 支付信息（值对象）
type PaymentInfo struct {
	Method        PaymentMethod
	TransactionID string
	Status        PaymentStatus
	PaymentDate   *time.Time
}

// NewOrder 创建订单（工厂方法）
func NewOrder(
	id string,
	orderNumber string,
	customer *CustomerInfo,
	shipping *ShippingInfo,
	items []*OrderItem,
	method PaymentMethod,
) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if orderNumber == "" {
		return nil, ErrInvalidOrderNumber
	}
	if customer == nil {
		return nil, ErrNilCustomer
	}
	if shipping == nil {
		return nil, ErrNilShipping
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, ErrInvalidUnitPrice
		}
	}

	now := time.Now()
	return &Order{
		ID:            id,
		OrderNumber:   orderNumber,
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
		Customer:      customer,
		Shipping:      shipping,
		Items:         items,
		Payment: &PaymentInfo{
			Method: method,
			Status: PaymentStatusPending,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyQuote 写入计价结果
func (o *Order) ApplyQuote(subtotal, shipping, discount, final decimal.Decimal, discountCode string) error {
	if final.IsNegative() {
		return ErrNegativeFinalAmount
	}
	o.Subtotal = subtotal
	o.ShippingCost = shipping
	o.DiscountAmount = discount
	o.DiscountCode = discountCode
	o.FinalAmount = final
	return nil
}

// ConfirmPayment 确认支付（领域行为，幂等）
// 返回 changed=false 表示已处于确认态，重复调用是空操作而非错误
func (o *Order) ConfirmPayment(transactionID string, paidAt time.Time) (bool, error) {
	if o.PaymentStatus == PaymentStatusConfirmed {
		return false, nil
	}
	if o.PaymentStatus == PaymentStatusRejected {
		// 支付状态只向前流转，不允许从 REJECTED 回退
		return false, ErrPaymentRejected
	}

	o.PaymentStatus = PaymentStatusConfirmed
	o.Status = OrderStatusPaid
	if o.Payment == nil {
		o.Payment = &PaymentInfo{}
	}
	o.Payment.Status = PaymentStatusConfirmed
	o.Payment.TransactionID = transactionID
	o.Payment.PaymentDate = &paidAt
	o.UpdatedAt = time.Now()
	return true, nil
}

// RejectPayment 拒绝支付（领域行为）
func (o *Order) RejectPayment() (bool, error) {
	if o.PaymentStatus == PaymentStatusRejected {
		return false, nil
	}
	if o.PaymentStatus == PaymentStatusConfirmed {
		return false, errors.New("payment already confirmed")
	}

	o.PaymentStatus = PaymentStatusRejected
	if o.Payment != nil {
		o.Payment.Status = PaymentStatusRejected
	}
	o.UpdatedAt = time.Now()
	return true, nil
}

// Cancel 取消订单，仅允许发货完成前
func (o *Order) Cancel() error {
	if o.Status == OrderStatusFulfilled {
		return ErrOrderFulfilled
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// ValidMethod 判断支付方式是否合法
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPromptPay, PaymentMethodBankTransfer:
		return true
	}
	return false
}
