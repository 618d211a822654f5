package svpayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rporder"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/common/model"
)

// Ref 一次对账的入口标识，两者必有其一
type Ref struct {
	SessionID string // 托管收银台回跳携带
	ChargeID  string // 页内支付/轮询携带
}

// Result 对账结果，轮询方永远拿到一个状态而不是错误
type Result struct {
	Status      etpayment.GatewayStatus `json:"status"`
	OrderNumber string                  `json:"order_number,omitempty"`
}

// RedirectGateway 托管收银台网关
type RedirectGateway interface {
	GetSession(ctx context.Context, sessionID string) (*etpayment.ChargeResult, error)
}

// ChargeGateway 直连扣款网关
type ChargeGateway interface {
	GetCharge(ctx context.Context, chargeID string) (*etpayment.ChargeResult, error)
}

// OrderStore 订单侧数据操作
type OrderStore interface {
	GetOrder(ctx context.Context, orderID string) (*etorder.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error)
	GetOrderByTransactionID(ctx context.Context, transactionID string) (*etorder.Order, error)
	MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*rporder.MarkPaidResult, error)
}

// PaymentStore 支付侧数据操作
type PaymentStore interface {
	GetSession(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error)
	UpsertPendingPayment(ctx context.Context, pending *etpayment.PendingPayment) error
	GetPendingPayment(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error)
	MarkPendingProcessed(ctx context.Context, chargeID string) error
}

// Notifier 支付完成通知入口
type Notifier interface {
	EnqueueOrderPaid(ctx context.Context, job *model.OrderPaidNotifyJob)
}

// ResultBus 对账结果总线（Smart Wait 用）
type ResultBus interface {
	Publish(ctx context.Context, channel string, message string) error
	Subscribe(ctx context.Context, channel string, timeout time.Duration) (string, error)
}

// ReconcileService 对账服务
// 回跳、回调、轮询殊途同归：每次都重查网关拿真实状态，
// 按固定优先级定位订单，状态流转幂等，孤儿扣款落兜底记录
type ReconcileService struct {
	orderStore   OrderStore
	paymentStore PaymentStore
	redirectGW   RedirectGateway
	chargeGW     ChargeGateway
	notifier     Notifier
	resultBus    ResultBus
	logger       logger.Logger
}

// NewReconcileService 创建对账服务实例
func NewReconcileService(
	orderStore OrderStore,
	paymentStore PaymentStore,
	redirectGW RedirectGateway,
	chargeGW ChargeGateway,
	notifier Notifier,
	resultBus ResultBus,
	log logger.Logger,
) *ReconcileService {
	return &ReconcileService{
		orderStore:   orderStore,
		paymentStore: paymentStore,
		redirectGW:   redirectGW,
		chargeGW:     chargeGW,
		notifier:     notifier,
		resultBus:    resultBus,
		logger:       log,
	}
}

// Reconcile 执行一次对账
// 1. 重查网关取真实状态（本地缓存只做降级，不做事实来源）
// 2. 依次通过 会话映射/交易标识 → 网关 metadata 订单号 → 兜底记录 定位订单
// 3. 找到订单且网关成功：幂等确认支付，单事务落库，首次确认才触发通知
// 4. 找不到订单且网关成功：按 charge_id upsert 兜底记录，成功扣款绝不丢失
// 5. 网关 pending/failed：不改本地状态，原样上报
func (s *ReconcileService) Reconcile(ctx context.Context, ref Ref) (*Result, error) {
	res, fallback, err := s.queryGateway(ctx, ref)
	if err != nil {
		return nil, err
	}
	if fallback != nil {
		return fallback, nil
	}

	order, err := s.locateOrder(ctx, res)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case etpayment.GatewayStatusSuccessful:
		if order != nil {
			return s.confirmOrder(ctx, order, res)
		}
		return s.recordOrphanCharge(ctx, ref, res)
	case etpayment.GatewayStatusFailed:
		return s.resultFor(res, order), nil
	default:
		return s.resultFor(res, order), nil
	}
}

// ReconcileWithWait 带 Smart Wait 的对账
// 结果仍为 pending 时订阅结果频道等待回调方推送，超时后再对账一次
func (s *ReconcileService) ReconcileWithWait(ctx context.Context, ref Ref, wait time.Duration) (*Result, error) {
	result, err := s.Reconcile(ctx, ref)
	if err != nil || result.Status != etpayment.GatewayStatusPending || wait <= 0 {
		return result, err
	}

	if _, err := s.resultBus.Subscribe(ctx, s.resultChannel(ref), wait); err != nil {
		// 超时或订阅失败都回落到再查一次
		s.logger.Debugf(ctx, "wait for payment result timed out: charge_id=%s", ref.ChargeID)
	}
	return s.Reconcile(ctx, ref)
}

// queryGateway 重查网关
// 网关不可用时回退到本地会话/兜底快照，对外呈现 pending 而不是错误，
// 因为扣款可能仍在带外进行
func (s *ReconcileService) queryGateway(ctx context.Context, ref Ref) (*etpayment.ChargeResult, *Result, error) {
	var (
		res *etpayment.ChargeResult
		err error
	)
	switch {
	case ref.SessionID != "":
		res, err = s.redirectGW.GetSession(ctx, ref.SessionID)
	case ref.ChargeID != "":
		res, err = s.chargeGW.GetCharge(ctx, ref.ChargeID)
	default:
		return nil, nil, errors.New("reconcile ref requires session_id or charge_id")
	}

	if err == nil {
		return res, nil, nil
	}

	if errors.Is(err, errorx.ErrGatewayUnavailable) {
		s.logger.Warnf(ctx, "gateway unavailable, falling back to local snapshot: session_id=%s charge_id=%s error=%v",
			ref.SessionID, ref.ChargeID, err)
		return nil, s.localFallback(ctx, ref), nil
	}

	if errors.Is(err, errorx.ErrChargeNotFound) || errors.Is(err, errorx.ErrSessionNotFound) {
		// 网关查不到不能直接判失败，先走本地兜底核实
		if result := s.verifyFromLocal(ctx, ref); result != nil {
			return nil, result, nil
		}
		return nil, &Result{Status: etpayment.GatewayStatusFailed}, nil
	}

	return nil, nil, err
}

// localFallback 网关不可用时的降级结果
func (s *ReconcileService) localFallback(ctx context.Context, ref Ref) *Result {
	if ref.SessionID != "" {
		session, err := s.paymentStore.GetSession(ctx, ref.SessionID)
		if err == nil && session != nil {
			order, err := s.orderStore.GetOrder(ctx, session.OrderID)
			if err == nil && order != nil {
				if order.PaymentStatus == etorder.PaymentStatusConfirmed {
					return &Result{Status: etpayment.GatewayStatusSuccessful, OrderNumber: order.OrderNumber}
				}
				return &Result{Status: etpayment.GatewayStatusPending, OrderNumber: order.OrderNumber}
			}
		}
	}
	return &Result{Status: etpayment.GatewayStatusPending}
}

// verifyFromLocal 网关查不到交易时的本地核实（直连适配器的回退查询）
func (s *ReconcileService) verifyFromLocal(ctx context.Context, ref Ref) *Result {
	if ref.ChargeID == "" {
		return nil
	}

	order, err := s.orderStore.GetOrderByTransactionID(ctx, ref.ChargeID)
	if err == nil && order != nil && order.PaymentStatus == etorder.PaymentStatusConfirmed {
		return &Result{Status: etpayment.GatewayStatusSuccessful, OrderNumber: order.OrderNumber}
	}

	pending, err := s.paymentStore.GetPendingPayment(ctx, ref.ChargeID)
	if err == nil && pending != nil && pending.Status == etorder.PaymentStatusConfirmed {
		return &Result{Status: etpayment.GatewayStatusSuccessful, OrderNumber: pending.OrderNumber}
	}

	return nil
}

// locateOrder 按优先级定位订单
func (s *ReconcileService) locateOrder(ctx context.Context, res *etpayment.ChargeResult) (*etorder.Order, error) {
	// (a) 直接映射：会话映射表 / 交易标识
	if res.SessionID != "" {
		session, err := s.paymentStore.GetSession(ctx, res.SessionID)
		if err != nil {
			return nil, err
		}
		if session != nil {
			order, err := s.orderStore.GetOrder(ctx, session.OrderID)
			if err != nil {
				return nil, err
			}
			if order != nil {
				return order, nil
			}
		}
	}
	if res.ChargeID != "" {
		order, err := s.orderStore.GetOrderByTransactionID(ctx, res.ChargeID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	// (b) 网关 metadata 携带的订单号
	if res.OrderNumber != "" {
		order, err := s.orderStore.GetOrderByNumber(ctx, res.OrderNumber)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	// (c) 兜底记录里已关联的订单号
	if res.ChargeID != "" {
		pending, err := s.paymentStore.GetPendingPayment(ctx, res.ChargeID)
		if err != nil {
			return nil, err
		}
		if pending != nil && pending.OrderNumber != "" {
			return s.orderStore.GetOrderByNumber(ctx, pending.OrderNumber)
		}
	}

	return nil, nil
}

// confirmOrder 幂等确认支付
func (s *ReconcileService) confirmOrder(ctx context.Context, order *etorder.Order, res *etpayment.ChargeResult) (*Result, error) {
	if res.Amount.IsPositive() && !res.Amount.Equal(order.FinalAmount) {
		s.logger.Warnf(ctx, "gateway amount mismatch: order_number=%s order=%s gateway=%s",
			order.OrderNumber, order.FinalAmount.String(), res.Amount.String())
	}

	transactionID := res.ChargeID
	if transactionID == "" {
		transactionID = res.SessionID
	}

	mr, err := s.orderStore.MarkOrderPaid(ctx, order.ID, transactionID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark order paid failed: %w", err)
	}

	if mr.NotifyNeeded {
		s.notifier.EnqueueOrderPaid(ctx, s.buildNotifyJob(mr.Order))
		s.publishResult(ctx, res, mr.Order.OrderNumber)
	}

	// 该笔交易若有兜底记录，顺手终态化
	if res.ChargeID != "" {
		if pending, err := s.paymentStore.GetPendingPayment(ctx, res.ChargeID); err == nil && pending != nil && !pending.Processed {
			if err := s.paymentStore.MarkPendingProcessed(ctx, res.ChargeID); err != nil {
				s.logger.Warnf(ctx, "mark pending payment processed failed: charge_id=%s error=%v", res.ChargeID, err)
			}
		}
	}

	return &Result{Status: etpayment.GatewayStatusSuccessful, OrderNumber: mr.Order.OrderNumber}, nil
}

// recordOrphanCharge 孤儿成功扣款落兜底记录
// 创建或更新同一 charge_id 的单条记录，留待后续对账或人工补单
func (s *ReconcileService) recordOrphanCharge(ctx context.Context, ref Ref, res *etpayment.ChargeResult) (*Result, error) {
	chargeID := res.ChargeID
	if chargeID == "" {
		chargeID = res.SessionID
	}

	method := etorder.PaymentMethodPromptPay
	if ref.SessionID != "" {
		method = etorder.PaymentMethodCard
	}

	pending, err := etpayment.NewConfirmedPendingPayment(chargeID, res.OrderNumber, res.Amount, method, res.Raw)
	if err != nil {
		return nil, err
	}
	if err := s.paymentStore.UpsertPendingPayment(ctx, pending); err != nil {
		return nil, fmt.Errorf("upsert pending payment failed: %w", err)
	}

	s.logger.Warnf(ctx, "successful charge without locatable order, recorded as pending payment: charge_id=%s order_number=%s amount=%s",
		chargeID, res.OrderNumber, res.Amount.String())

	return &Result{Status: etpayment.GatewayStatusSuccessful, OrderNumber: res.OrderNumber}, nil
}

func (s *ReconcileService) resultFor(res *etpayment.ChargeResult, order *etorder.Order) *Result {
	result := &Result{Status: res.Status, OrderNumber: res.OrderNumber}
	if order != nil {
		result.OrderNumber = order.OrderNumber
	}
	return result
}

// publishResult 发布对账结果（尽力而为）
func (s *ReconcileService) publishResult(ctx context.Context, res *etpayment.ChargeResult, orderNumber string) {
	channels := []string{}
	if res.ChargeID != "" {
		channels = append(channels, "payment:result:"+res.ChargeID)
	}
	if res.SessionID != "" {
		channels = append(channels, "payment:result:"+res.SessionID)
	}
	for _, ch := range channels {
		if err := s.resultBus.Publish(ctx, ch, string(etpayment.GatewayStatusSuccessful)); err != nil {
			s.logger.Warnf(ctx, "publish payment result failed: channel=%s order_number=%s error=%v", ch, orderNumber, err)
		}
	}
}

func (s *ReconcileService) resultChannel(ref Ref) string {
	if ref.ChargeID != "" {
		return "payment:result:" + ref.ChargeID
	}
	return "payment:result:" + ref.SessionID
}

// buildNotifyJob 组装通知任务
func (s *ReconcileService) buildNotifyJob(order *etorder.Order) *model.OrderPaidNotifyJob {
	job := &model.OrderPaidNotifyJob{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		FinalAmount: order.FinalAmount.StringFixed(2),
		PaidAt:      time.Now().Unix(),
	}
	if order.Customer != nil {
		job.CustomerName = order.Customer.Name
		job.CustomerEmail = order.Customer.Email
	}
	if order.Payment != nil {
		job.PaymentMethod = string(order.Payment.Method)
	}
	return job
}
