package request

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	Customer      *Customer  `json:"customer" binding:"required"`
	Shipping      *Shipping  `json:"shipping" binding:"required"`
	Items         []*Item    `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string     `json:"payment_method" binding:"required" example:"CARD"`
	DiscountCode  string     `json:"discount_code" example:"WELCOME100"`
	ChargeID      string     `json:"charge_id" example:"chrg_test_5xxxxxxxxxxxx"`
}

// Customer 客户信息
type Customer struct {
	Name  string `json:"name" binding:"required" example:"สมชาย ใจดี"`
	Email string `json:"email" binding:"required,email" example:"somchai@example.com"`
	Phone string `json:"phone" example:"0812345678"`
}

// Shipping 收货信息
type Shipping struct {
	RecipientName string `json:"recipient_name" binding:"required" example:"สมหญิง ใจดี"`
	Phone         string `json:"phone" binding:"required" example:"0898765432"`
	Address       string `json:"address" binding:"required" example:"99/1 ถนนสุขุมวิท"`
	Province      string `json:"province" binding:"required" example:"กรุงเทพมหานคร"`
	PostalCode    string `json:"postal_code" binding:"required" example:"10110"`
	DeliveryDate  string `json:"delivery_date" example:"2026-02-14"`
	DeliveryTime  string `json:"delivery_time" example:"09:00-12:00"`
	CardMessage   string `json:"card_message" example:"Happy Valentine's Day"`
}

// Item 商品行
type Item struct {
	ProductID   string `json:"product_id" binding:"required" example:"prd_001"`
	ProductName string `json:"product_name" binding:"required" example:"ช่อกุหลาบแดง 12 ดอก"`
	UnitPrice   string `json:"unit_price" binding:"required" example:"1290.00"`
	Quantity    int    `json:"quantity" binding:"required,min=1" example:"1"`
}
