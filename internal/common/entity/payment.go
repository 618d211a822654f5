package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentInfo 支付信息，每笔订单至多一条
type PaymentInfo struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID       string     `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:uk_payment_order"`
	Method        string     `gorm:"column:method;type:varchar(32);not null"`
	TransactionID *string    `gorm:"column:transaction_id;type:varchar(128);index:idx_payment_txn"`
	Status        string     `gorm:"column:status;type:varchar(16);not null;default:'PENDING'"`
	PaymentDate   *time.Time `gorm:"column:payment_date"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null"`
}

func (PaymentInfo) TableName() string {
	return "payment_infos"
}

// GatewaySession 托管收银台会话与订单的映射
// status/amount 仅为展示与降级用的本地快照，真实状态以网关为准
type GatewaySession struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID string          `gorm:"column:session_id;type:varchar(128);not null;uniqueIndex:uk_session_id"`
	OrderID   string          `gorm:"column:order_id;type:varchar(64);not null;index:idx_session_order"`
	Status    string          `gorm:"column:status;type:varchar(16);not null;default:'pending'"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Snapshot  datatypes.JSON  `gorm:"column:snapshot;type:json"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null"`
}

func (GatewaySession) TableName() string {
	return "gateway_sessions"
}

// PendingPayment 对账兜底记录
// 网关已扣款成功但本地找不到订单时落库，按 charge_id 幂等 upsert
type PendingPayment struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ChargeID    string          `gorm:"column:charge_id;type:varchar(128);not null;uniqueIndex:uk_charge_id"`
	OrderNumber *string         `gorm:"column:order_number;type:varchar(32);index:idx_pending_order_number"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Method      string          `gorm:"column:method;type:varchar(32);not null"`
	Status      string          `gorm:"column:status;type:varchar(16);not null;default:'PENDING'"`
	Processed   bool            `gorm:"column:processed;not null;default:false"`
	RawPayload  datatypes.JSON  `gorm:"column:raw_payload;type:json"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;not null"`
}

func (PendingPayment) TableName() string {
	return "pending_payments"
}

// PaymentConfirmation 人工转账凭证
// order_number 为软引用：凭证允许先于订单可见而到达
type PaymentConfirmation struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(64)"`
	OrderNumber string          `gorm:"column:order_number;type:varchar(32);not null;index:idx_confirmation_order_number"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	BankName    string          `gorm:"column:bank_name;type:varchar(128);not null"`
	Note        string          `gorm:"column:note;type:varchar(512)"`
	SlipImage   string          `gorm:"column:slip_image;type:varchar(512);not null"`
	Status      string          `gorm:"column:status;type:varchar(16);not null;default:'PENDING'"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;not null"`
}

func (PaymentConfirmation) TableName() string {
	return "payment_confirmations"
}

// 凭证状态常量
const (
	ConfirmationStatusPending  = "PENDING"
	ConfirmationStatusApproved = "APPROVED"
	ConfirmationStatusRejected = "REJECTED"
)
