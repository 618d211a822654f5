package svpayment

import (
	"context"
	"time"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rporder"
	"github.com/ballnaha/treetelu-sub002/internal/common/model"
)

// 测试用手写 mock，函数字段未设置时按"未找到"处理

type mockOrderStore struct {
	getOrderFn       func(ctx context.Context, orderID string) (*etorder.Order, error)
	getByNumberFn    func(ctx context.Context, orderNumber string) (*etorder.Order, error)
	getByTxnFn       func(ctx context.Context, transactionID string) (*etorder.Order, error)
	markPaidFn       func(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*rporder.MarkPaidResult, error)
	markPaidCalls    int
	markPaidOrderIDs []string
}

func (m *mockOrderStore) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	if m.getOrderFn == nil {
		return nil, nil
	}
	return m.getOrderFn(ctx, orderID)
}

func (m *mockOrderStore) GetOrderByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	if m.getByNumberFn == nil {
		return nil, nil
	}
	return m.getByNumberFn(ctx, orderNumber)
}

func (m *mockOrderStore) GetOrderByTransactionID(ctx context.Context, transactionID string) (*etorder.Order, error) {
	if m.getByTxnFn == nil {
		return nil, nil
	}
	return m.getByTxnFn(ctx, transactionID)
}

func (m *mockOrderStore) MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*rporder.MarkPaidResult, error) {
	m.markPaidCalls++
	m.markPaidOrderIDs = append(m.markPaidOrderIDs, orderID)
	if m.markPaidFn == nil {
		return nil, nil
	}
	return m.markPaidFn(ctx, orderID, transactionID, paidAt)
}

type mockPaymentStore struct {
	getSessionFn  func(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error)
	getPendingFn  func(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error)
	upserted      []*etpayment.PendingPayment
	processedIDs  []string
	upsertErr     error
	processingErr error
}

func (m *mockPaymentStore) GetSession(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error) {
	if m.getSessionFn == nil {
		return nil, nil
	}
	return m.getSessionFn(ctx, sessionID)
}

func (m *mockPaymentStore) UpsertPendingPayment(ctx context.Context, pending *etpayment.PendingPayment) error {
	m.upserted = append(m.upserted, pending)
	return m.upsertErr
}

func (m *mockPaymentStore) GetPendingPayment(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error) {
	if m.getPendingFn == nil {
		return nil, nil
	}
	return m.getPendingFn(ctx, chargeID)
}

func (m *mockPaymentStore) MarkPendingProcessed(ctx context.Context, chargeID string) error {
	m.processedIDs = append(m.processedIDs, chargeID)
	return m.processingErr
}

type mockRedirectGateway struct {
	getSessionFn func(ctx context.Context, sessionID string) (*etpayment.ChargeResult, error)
}

func (m *mockRedirectGateway) GetSession(ctx context.Context, sessionID string) (*etpayment.ChargeResult, error) {
	return m.getSessionFn(ctx, sessionID)
}

type mockChargeGateway struct {
	getChargeFn func(ctx context.Context, chargeID string) (*etpayment.ChargeResult, error)
	calls       int
}

func (m *mockChargeGateway) GetCharge(ctx context.Context, chargeID string) (*etpayment.ChargeResult, error) {
	m.calls++
	return m.getChargeFn(ctx, chargeID)
}

type mockNotifier struct {
	jobs []*model.OrderPaidNotifyJob
}

func (m *mockNotifier) EnqueueOrderPaid(ctx context.Context, job *model.OrderPaidNotifyJob) {
	m.jobs = append(m.jobs, job)
}

type mockResultBus struct {
	published   map[string]string
	subscribeFn func(ctx context.Context, channel string, timeout time.Duration) (string, error)
}

func (m *mockResultBus) Publish(ctx context.Context, channel string, message string) error {
	if m.published == nil {
		m.published = make(map[string]string)
	}
	m.published[channel] = message
	return nil
}

func (m *mockResultBus) Subscribe(ctx context.Context, channel string, timeout time.Duration) (string, error) {
	if m.subscribeFn == nil {
		return "", context.DeadlineExceeded
	}
	return m.subscribeFn(ctx, channel, timeout)
}
