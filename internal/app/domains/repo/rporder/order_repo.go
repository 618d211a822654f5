package rporder

import (
	"context"
	"time"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
)

// MarkPaidResult 支付确认事务的结果
type MarkPaidResult struct {
	Order            *etorder.Order
	AlreadyConfirmed bool // 订单此前已确认，本次为空操作
	NotifyNeeded     bool // 通知标记在本事务内首次写入，需要触发通知
}

// OrderRepository 订单仓储接口（只定义，不实现）
// 实现在 infra/persistence 层之上的 gorm 版本
type OrderRepository interface {
	// Create 创建订单聚合
	// 订单、客户快照、收货快照、明细、支付信息与折扣码用量在同一事务内写入
	Create(ctx context.Context, order *etorder.Order) error

	// GetByID 根据ID查询订单，未找到返回 (nil, nil)
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// GetByOrderNumber 根据订单号查询，未找到返回 (nil, nil)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*etorder.Order, error)

	// GetByIdempotencyKey 根据幂等键查询，未找到返回 (nil, nil)
	GetByIdempotencyKey(ctx context.Context, key string) (*etorder.Order, error)

	// GetByTransactionID 根据网关交易标识查询，未找到返回 (nil, nil)
	GetByTransactionID(ctx context.Context, transactionID string) (*etorder.Order, error)

	// MarkPaid 支付确认状态机落库
	// 订单状态、支付信息、会话映射状态与通知标记在单个事务内完成，
	// 对已确认订单重复调用返回 AlreadyConfirmed 而不是错误
	MarkPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*MarkPaidResult, error)

	// GetDiscountByCode 查询折扣码，未找到返回 (nil, nil)
	GetDiscountByCode(ctx context.Context, code string) (*etorder.DiscountCode, error)
}
