package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单实体
type Order struct {
	ID             string          `gorm:"column:id;primaryKey;type:varchar(64)"`
	OrderNumber    string          `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex:uk_order_number"`
	Status         string          `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index:idx_status"`
	PaymentStatus  string          `gorm:"column:payment_status;type:varchar(16);not null;default:'PENDING'"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null"`
	ShippingCost   decimal.Decimal `gorm:"column:shipping_cost;type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(12,2);not null"`
	DiscountCode   *string         `gorm:"column:discount_code;type:varchar(64)"`
	FinalAmount    decimal.Decimal `gorm:"column:final_amount;type:decimal(12,2);not null"`

	// 幂等键：同一提交上下文重试不会创建第二笔订单
	IdempotencyKey *string `gorm:"column:idempotency_key;type:varchar(128);uniqueIndex:uk_idempotency_key"`

	// 通知去重标记：与支付确认在同一事务内写入
	NotifiedAt *time.Time `gorm:"column:notified_at"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderCustomer 下单时的客户信息快照（非用户账号引用）
type OrderCustomer struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID string `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:uk_customer_order"`
	Name    string `gorm:"column:name;type:varchar(128);not null"`
	Email   string `gorm:"column:email;type:varchar(255);not null"`
	Phone   string `gorm:"column:phone;type:varchar(32);not null"`
}

func (OrderCustomer) TableName() string {
	return "order_customers"
}

// OrderShipping 下单时的收货信息快照
type OrderShipping struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID       string     `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:uk_shipping_order"`
	RecipientName string     `gorm:"column:recipient_name;type:varchar(128);not null"`
	Phone         string     `gorm:"column:phone;type:varchar(32);not null"`
	Address       string     `gorm:"column:address;type:varchar(512);not null"`
	Province      string     `gorm:"column:province;type:varchar(64)"`
	PostalCode    string     `gorm:"column:postal_code;type:varchar(16)"`
	DeliveryDate  *time.Time `gorm:"column:delivery_date"`
	DeliveryTime  string     `gorm:"column:delivery_time;type:varchar(32)"`
	CardMessage   string     `gorm:"column:card_message;type:varchar(512)"`
}

func (OrderShipping) TableName() string {
	return "order_shippings"
}

// OrderItem 订单明细，单价为下单时快照
type OrderItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     string          `gorm:"column:order_id;type:varchar(64);not null;index:idx_item_order"`
	ProductID   string          `gorm:"column:product_id;type:varchar(64);not null"`
	ProductName string          `gorm:"column:product_name;type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// DiscountCode 折扣码
type DiscountCode struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Code           string          `gorm:"column:code;type:varchar(64);not null;uniqueIndex:uk_discount_code"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	MinOrderAmount decimal.Decimal `gorm:"column:min_order_amount;type:decimal(12,2);not null;default:0"`
	UsageLimit     int             `gorm:"column:usage_limit;not null;default:0"`
	UsedCount      int             `gorm:"column:used_count;not null;default:0"`
	ExpiresAt      *time.Time      `gorm:"column:expires_at"`
	Active         bool            `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// 订单状态常量
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFulfilled = "FULFILLED"
	OrderStatusCancelled = "CANCELLED"
)

// 支付状态常量
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusRejected  = "REJECTED"
)
