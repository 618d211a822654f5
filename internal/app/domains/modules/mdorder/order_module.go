package mdorder

import (
	"context"
	"time"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rporder"
)

// OrderModule 订单模块（数据操作编排层）
type OrderModule struct {
	orderRepo rporder.OrderRepository
}

// NewOrderModule 创建订单模块
func NewOrderModule(orderRepo rporder.OrderRepository) *OrderModule {
	return &OrderModule{orderRepo: orderRepo}
}

// CreateOrder 创建订单（数据操作）
func (m *OrderModule) CreateOrder(ctx context.Context, order *etorder.Order) error {
	return m.orderRepo.Create(ctx, order)
}

// GetOrder 根据ID查询订单
func (m *OrderModule) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return m.orderRepo.GetByID(ctx, orderID)
}

// GetOrderByNumber 根据订单号查询
func (m *OrderModule) GetOrderByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	return m.orderRepo.GetByOrderNumber(ctx, orderNumber)
}

// GetOrderByIdempotencyKey 根据幂等键查询（提交重试去重）
func (m *OrderModule) GetOrderByIdempotencyKey(ctx context.Context, key string) (*etorder.Order, error) {
	return m.orderRepo.GetByIdempotencyKey(ctx, key)
}

// GetOrderByTransactionID 根据网关交易标识查询
func (m *OrderModule) GetOrderByTransactionID(ctx context.Context, transactionID string) (*etorder.Order, error) {
	return m.orderRepo.GetByTransactionID(ctx, transactionID)
}

// MarkOrderPaid 支付确认状态机落库（幂等）
func (m *OrderModule) MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*rporder.MarkPaidResult, error) {
	return m.orderRepo.MarkPaid(ctx, orderID, transactionID, paidAt)
}

// GetDiscountByCode 查询折扣码
func (m *OrderModule) GetDiscountByCode(ctx context.Context, code string) (*etorder.DiscountCode, error) {
	return m.orderRepo.GetDiscountByCode(ctx, code)
}
