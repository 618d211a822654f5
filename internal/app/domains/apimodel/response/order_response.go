package response

import "time"

// CheckoutResponse 结账响应（DTO）
type CheckoutResponse struct {
	Order       *OrderResponse `json:"order"`
	RedirectURL string         `json:"redirect_url,omitempty"`
	Replayed    bool           `json:"replayed,omitempty"`
}

// OrderResponse 订单响应（DTO）
type OrderResponse struct {
	ID             string               `json:"id"`
	OrderNumber    string               `json:"order_number"`
	Status         string               `json:"status"`
	PaymentStatus  string               `json:"payment_status"`
	PaymentMethod  string               `json:"payment_method,omitempty"`
	Subtotal       string               `json:"subtotal"`
	ShippingCost   string               `json:"shipping_cost"`
	DiscountAmount string               `json:"discount_amount"`
	DiscountCode   string               `json:"discount_code,omitempty"`
	FinalAmount    string               `json:"final_amount"`
	Items          []*OrderItemResponse `json:"items"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderItemResponse 订单明细（DTO）
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// PaymentStatusResponse 支付状态查询响应（DTO）
type PaymentStatusResponse struct {
	Status      string `json:"status"`
	OrderNumber string `json:"order_number,omitempty"`
}

// ConfirmationResponse 转账凭证受理响应（DTO）
type ConfirmationResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Amount      string    `json:"amount"`
	BankName    string    `json:"bank_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
