package mdpayment

import (
	"context"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rppayment"
)

// PaymentModule 支付模块（数据操作编排层）
type PaymentModule struct {
	paymentRepo rppayment.PaymentRepository
}

// NewPaymentModule 创建支付模块
func NewPaymentModule(paymentRepo rppayment.PaymentRepository) *PaymentModule {
	return &PaymentModule{paymentRepo: paymentRepo}
}

// CreateSession 持久化托管会话映射
func (m *PaymentModule) CreateSession(ctx context.Context, session *etpayment.GatewaySession) error {
	return m.paymentRepo.CreateSession(ctx, session)
}

// GetSession 根据会话标识查询映射
func (m *PaymentModule) GetSession(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error) {
	return m.paymentRepo.GetSessionByID(ctx, sessionID)
}

// UpsertPendingPayment 兜底记录幂等写入
func (m *PaymentModule) UpsertPendingPayment(ctx context.Context, pending *etpayment.PendingPayment) error {
	return m.paymentRepo.UpsertPendingPayment(ctx, pending)
}

// GetPendingPayment 根据交易标识查询兜底记录
func (m *PaymentModule) GetPendingPayment(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error) {
	return m.paymentRepo.GetPendingPaymentByChargeID(ctx, chargeID)
}

// MarkPendingProcessed 兜底记录终态化
func (m *PaymentModule) MarkPendingProcessed(ctx context.Context, chargeID string) error {
	return m.paymentRepo.MarkPendingProcessed(ctx, chargeID)
}

// CreateConfirmation 保存人工转账凭证
func (m *PaymentModule) CreateConfirmation(ctx context.Context, confirmation *etpayment.PaymentConfirmation) error {
	return m.paymentRepo.CreateConfirmation(ctx, confirmation)
}
