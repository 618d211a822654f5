package rppayment

import (
	"context"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
)

// PaymentRepository 支付侧仓储接口（只定义，不实现）
type PaymentRepository interface {
	// CreateSession 持久化托管会话与订单的映射
	CreateSession(ctx context.Context, session *etpayment.GatewaySession) error

	// GetSessionByID 根据会话标识查询映射，未找到返回 (nil, nil)
	GetSessionByID(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error)

	// UpsertPendingPayment 兜底记录按 charge_id 幂等写入
	// 不存在则创建，存在则更新状态/订单号/原始报文，绝不产生第二行
	UpsertPendingPayment(ctx context.Context, pending *etpayment.PendingPayment) error

	// GetPendingPaymentByChargeID 根据交易标识查询兜底记录，未找到返回 (nil, nil)
	GetPendingPaymentByChargeID(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error)

	// MarkPendingProcessed 兜底记录终态化
	MarkPendingProcessed(ctx context.Context, chargeID string) error

	// CreateConfirmation 保存人工转账凭证
	CreateConfirmation(ctx context.Context, confirmation *etpayment.PaymentConfirmation) error
}
