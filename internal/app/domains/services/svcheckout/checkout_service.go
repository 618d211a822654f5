package svcheckout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpricing"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/gateway/stripeapi"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
)

// OrderStore 订单侧数据操作
type OrderStore interface {
	CreateOrder(ctx context.Context, order *etorder.Order) error
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*etorder.Order, error)
	GetDiscountByCode(ctx context.Context, code string) (*etorder.DiscountCode, error)
}

// SessionStore 会话映射持久化
type SessionStore interface {
	CreateSession(ctx context.Context, session *etpayment.GatewaySession) error
}

// SessionCreator 托管收银台会话创建
type SessionCreator interface {
	CreateSession(ctx context.Context, input *stripeapi.CreateSessionInput) (*stripeapi.SessionResult, error)
}

// Reconciler 对账入口（页内扣款的乐观对账用）
type Reconciler interface {
	Reconcile(ctx context.Context, ref svpayment.Ref) (*svpayment.Result, error)
}

// OrderNumberGen 订单号生成
type OrderNumberGen interface {
	Next() string
}

// CheckoutItem 结账商品行
type CheckoutItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// CheckoutInput 结账入参
type CheckoutInput struct {
	Customer       *etorder.CustomerInfo
	Shipping       *etorder.ShippingInfo
	Items          []CheckoutItem
	PaymentMethod  etorder.PaymentMethod
	DiscountCode   string
	IdempotencyKey string
	ChargeID       string // 页内扣款已发起时携带
}

// CheckoutResult 结账结果
type CheckoutResult struct {
	Order       *etorder.Order
	RedirectURL string // 托管收银台跳转地址（CARD 流程才有）
	Replayed    bool   // 命中幂等键，返回的是已有订单
}

// CheckoutService 结账服务（业务编排层）
type CheckoutService struct {
	orderStore     OrderStore
	sessionStore   SessionStore
	sessionCreator SessionCreator
	reconciler     Reconciler
	pricing        *svpricing.Calculator
	orderNumGen    OrderNumberGen
	logger         logger.Logger
}

// NewCheckoutService 创建结账服务实例
func NewCheckoutService(
	orderStore OrderStore,
	sessionStore SessionStore,
	sessionCreator SessionCreator,
	reconciler Reconciler,
	pricing *svpricing.Calculator,
	orderNumGen OrderNumberGen,
	log logger.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderStore:     orderStore,
		sessionStore:   sessionStore,
		sessionCreator: sessionCreator,
		reconciler:     reconciler,
		pricing:        pricing,
		orderNumGen:    orderNumGen,
		logger:         log,
	}
}

// Checkout 结账主流程
// 1. 校验支付方式，命中幂等键直接回放已有订单
// 2. 计价：小计 → 折扣码校验 → 运费 → 实付
// 3. 订单聚合单事务落库（含折扣码用量守卫）
// 4. 按支付方式做后置编排：CARD 创建托管会话；PROMPTPAY 带 charge_id 时乐观对账一次
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if !etorder.ValidMethod(input.PaymentMethod) {
		return nil, errorx.ErrInvalidPaymentMethod
	}

	// 1. 幂等回放
	if input.IdempotencyKey != "" {
		existing, err := s.orderStore.GetOrderByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &CheckoutResult{Order: existing, Replayed: true}, nil
		}
	}

	// 2. 计价
	cartItems := make([]svpricing.CartItem, 0, len(input.Items))
	for _, item := range input.Items {
		cartItems = append(cartItems, svpricing.CartItem{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	subtotal := s.pricing.Subtotal(cartItems)

	discountAmount := decimal.Zero
	if input.DiscountCode != "" {
		discount, err := s.orderStore.GetDiscountByCode(ctx, input.DiscountCode)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, errorx.ErrDiscountNotFound
		}
		if err := discount.ValidateFor(subtotal, time.Now()); err != nil {
			return nil, err
		}
		discountAmount = discount.Amount
	}

	quote, err := s.pricing.Quote(cartItems, discountAmount)
	if err != nil {
		return nil, err
	}

	// 3. 构建聚合并落库
	order, err := s.buildOrder(input, quote)
	if err != nil {
		return nil, err
	}

	if err := s.orderStore.CreateOrder(ctx, order); err != nil {
		recovered, replayed, rerr := s.recoverCreateConflict(ctx, input, order, err)
		if rerr != nil {
			return nil, rerr
		}
		if replayed {
			return &CheckoutResult{Order: recovered, Replayed: true}, nil
		}
		order = recovered
	}

	result := &CheckoutResult{Order: order}

	// 4. 支付方式后置编排
	switch input.PaymentMethod {
	case etorder.PaymentMethodCard:
		redirectURL, err := s.createGatewaySession(ctx, order)
		if err != nil {
			return nil, err
		}
		result.RedirectURL = redirectURL
	case etorder.PaymentMethodPromptPay:
		if input.ChargeID != "" {
			// 页内扣款可能已完成，乐观对账一次，失败不影响建单结果
			if _, err := s.reconciler.Reconcile(ctx, svpayment.Ref{ChargeID: input.ChargeID}); err != nil {
				s.logger.Warnf(ctx, "optimistic reconcile after checkout failed: order_number=%s charge_id=%s error=%v",
					order.OrderNumber, input.ChargeID, err)
			}
		}
	}

	return result, nil
}

// buildOrder 组装订单聚合
func (s *CheckoutService) buildOrder(input *CheckoutInput, quote *svpricing.Quote) (*etorder.Order, error) {
	items := make([]*etorder.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, &etorder.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	order, err := etorder.NewOrder(
		uuid.New().String(),
		s.orderNumGen.Next(),
		input.Customer,
		input.Shipping,
		items,
		input.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}
	order.IdempotencyKey = input.IdempotencyKey

	if err := order.ApplyQuote(quote.Subtotal, quote.ShippingCost, quote.DiscountAmount, quote.FinalAmount, input.DiscountCode); err != nil {
		return nil, err
	}
	return order, nil
}

// recoverCreateConflict 处理建单时的唯一键冲突
// 幂等键撞库说明重试请求已建单，回放已有订单；
// 订单号撞库则换号重试一次（序列号同秒回绕的小概率事件）
func (s *CheckoutService) recoverCreateConflict(ctx context.Context, input *CheckoutInput, order *etorder.Order, createErr error) (*etorder.Order, bool, error) {
	if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return nil, false, createErr
	}

	if input.IdempotencyKey != "" {
		existing, err := s.orderStore.GetOrderByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	order.OrderNumber = s.orderNumGen.Next()
	if err := s.orderStore.CreateOrder(ctx, order); err != nil {
		return nil, false, fmt.Errorf("create order failed after retry: %w", err)
	}
	return order, false, nil
}

// createGatewaySession 创建托管收银台会话并持久化映射
// 映射落库失败只降级告警：对账仍可通过 metadata 订单号定位订单
func (s *CheckoutService) createGatewaySession(ctx context.Context, order *etorder.Order) (string, error) {
	lineItems := make([]stripeapi.LineItem, 0, len(order.Items)+2)
	for _, item := range order.Items {
		lineItems = append(lineItems, stripeapi.LineItem{
			Name:      item.ProductName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	if order.ShippingCost.IsPositive() {
		lineItems = append(lineItems, stripeapi.LineItem{
			Name:      "ค่าจัดส่ง",
			UnitPrice: order.ShippingCost,
			Quantity:  1,
		})
	}
	if order.DiscountAmount.IsPositive() {
		lineItems = append(lineItems, stripeapi.LineItem{
			Name:      "ส่วนลด " + order.DiscountCode,
			UnitPrice: order.DiscountAmount.Neg(),
			Quantity:  1,
		})
	}

	session, err := s.sessionCreator.CreateSession(ctx, &stripeapi.CreateSessionInput{
		OrderNumber: order.OrderNumber,
		Amount:      order.FinalAmount,
		Currency:    "thb",
		LineItems:   lineItems,
	})
	if err != nil {
		return "", fmt.Errorf("create gateway session failed: %w", err)
	}

	now := time.Now()
	if err := s.sessionStore.CreateSession(ctx, &etpayment.GatewaySession{
		SessionID: session.SessionID,
		OrderID:   order.ID,
		Status:    etpayment.GatewayStatusPending,
		Amount:    order.FinalAmount,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		s.logger.Warnf(ctx, "persist gateway session failed: order_number=%s session_id=%s error=%v",
			order.OrderNumber, session.SessionID, err)
	}

	return session.RedirectURL, nil
}
