package etpayment

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
)

// 错误定义
var (
	ErrInvalidChargeID      = errors.New("charge ID cannot be empty")
	ErrInvalidConfirmID     = errors.New("confirmation ID cannot be empty")
	ErrEmptyOrderNumber     = errors.New("order number cannot be empty")
	ErrInvalidClaimedAmount = errors.New("claimed amount must be positive")
	ErrEmptyBankName        = errors.New("bank name cannot be empty")
	ErrEmptySlipImage       = errors.New("slip image is required")
)

// GatewayStatus 网关侧支付状态（对账统一口径）
type GatewayStatus string

const (
	GatewayStatusPending    GatewayStatus = "pending"
	GatewayStatusSuccessful GatewayStatus = "successful"
	GatewayStatusFailed     GatewayStatus = "failed"
)

// ChargeResult 网关查询结果（两类网关归一化后的形态）
type ChargeResult struct {
	ChargeID    string          // 网关交易标识
	SessionID   string          // 托管会话标识（跳转流程才有）
	Status      GatewayStatus   // 网关侧状态
	Amount      decimal.Decimal // 网关侧金额
	OrderNumber string          // 网关 metadata 携带的订单号（可为空）
	Raw         json.RawMessage // 原始响应，供兜底记录留痕
}

// GatewaySession 托管会话与订单的映射（领域对象）
type GatewaySession struct {
	SessionID string
	OrderID   string
	Status    GatewayStatus
	Amount    decimal.Decimal
	Snapshot  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingPayment 对账兜底记录（领域对象）
// 同一 charge_id 仅存在一条，重复观察到时更新而非新增
type PendingPayment struct {
	ChargeID    string
	OrderNumber string // 可为空：网关 metadata 没带订单号时
	Amount      decimal.Decimal
	Method      etorder.PaymentMethod
	Status      etorder.PaymentStatus
	Processed   bool
	RawPayload  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewConfirmedPendingPayment 由一次孤儿成功扣款创建兜底记录
func NewConfirmedPendingPayment(chargeID, orderNumber string, amount decimal.Decimal, method etorder.PaymentMethod, raw json.RawMessage) (*PendingPayment, error) {
	if chargeID == "" {
		return nil, ErrInvalidChargeID
	}
	now := time.Now()
	return &PendingPayment{
		ChargeID:    chargeID,
		OrderNumber: orderNumber,
		Amount:      amount,
		Method:      method,
		Status:      etorder.PaymentStatusConfirmed,
		Processed:   false,
		RawPayload:  raw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// PaymentConfirmation 人工转账凭证（领域对象）
// OrderNumber 为软引用，允许凭证先于订单到达
type PaymentConfirmation struct {
	ID          string
	OrderNumber string
	Amount      decimal.Decimal
	BankName    string
	Note        string
	SlipImage   string
	Status      ConfirmationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConfirmationStatus 凭证审核状态
type ConfirmationStatus string

const (
	ConfirmationStatusPending  ConfirmationStatus = "PENDING"
	ConfirmationStatusApproved ConfirmationStatus = "APPROVED"
	ConfirmationStatusRejected ConfirmationStatus = "REJECTED"
)

// NewPaymentConfirmation 创建凭证（工厂方法）
// 不校验金额与订单总额是否一致，金额核对属于人工审核环节
func NewPaymentConfirmation(id, orderNumber string, amount decimal.Decimal, bankName, note, slipImage string) (*PaymentConfirmation, error) {
	if id == "" {
		return nil, ErrInvalidConfirmID
	}
	if orderNumber == "" {
		return nil, ErrEmptyOrderNumber
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidClaimedAmount
	}
	if bankName == "" {
		return nil, ErrEmptyBankName
	}
	if slipImage == "" {
		return nil, ErrEmptySlipImage
	}

	now := time.Now()
	return &PaymentConfirmation{
		ID:          id,
		OrderNumber: orderNumber,
		Amount:      amount,
		BankName:    bankName,
		Note:        note,
		SlipImage:   slipImage,
		Status:      ConfirmationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
