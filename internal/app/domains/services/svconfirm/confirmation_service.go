package svconfirm

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
)

// ConfirmationStore 凭证持久化
type ConfirmationStore interface {
	CreateConfirmation(ctx context.Context, confirmation *etpayment.PaymentConfirmation) error
}

// OrderFinder 订单查询（仅用于提示性核对）
type OrderFinder interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error)
}

// SlipStore 凭证图片存储
type SlipStore interface {
	Save(ctx context.Context, orderNumber, filename string, r io.Reader) (string, error)
}

// SubmitInput 凭证提交入参
type SubmitInput struct {
	OrderNumber  string
	Amount       decimal.Decimal
	BankName     string
	Note         string
	SlipFilename string
	SlipReader   io.Reader
}

// ConfirmationService 转账凭证受理服务
// 订单号是软引用：找不到对应订单只告警不拒收，
// 允许客户在下单异常后先把凭证递进来，由人工审核兜底
type ConfirmationService struct {
	store       ConfirmationStore
	orderFinder OrderFinder
	slipStore   SlipStore
	logger      logger.Logger
}

// NewConfirmationService 创建凭证受理服务
func NewConfirmationService(store ConfirmationStore, orderFinder OrderFinder, slipStore SlipStore, log logger.Logger) *ConfirmationService {
	return &ConfirmationService{
		store:       store,
		orderFinder: orderFinder,
		slipStore:   slipStore,
		logger:      log,
	}
}

// Submit 受理一份转账凭证，落库后处于 PENDING 待人工审核
func (s *ConfirmationService) Submit(ctx context.Context, input *SubmitInput) (*etpayment.PaymentConfirmation, error) {
	order, err := s.orderFinder.GetOrderByNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		s.logger.Warnf(ctx, "payment confirmation references unknown order: order_number=%s", input.OrderNumber)
	} else if !input.Amount.Equal(order.FinalAmount) {
		s.logger.Warnf(ctx, "payment confirmation amount differs from order: order_number=%s claimed=%s expected=%s",
			input.OrderNumber, input.Amount.String(), order.FinalAmount.String())
	}

	slipPath, err := s.slipStore.Save(ctx, input.OrderNumber, input.SlipFilename, input.SlipReader)
	if err != nil {
		return nil, fmt.Errorf("save slip image failed: %w", err)
	}

	confirmation, err := etpayment.NewPaymentConfirmation(
		uuid.New().String(),
		input.OrderNumber,
		input.Amount,
		input.BankName,
		input.Note,
		slipPath,
	)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateConfirmation(ctx, confirmation); err != nil {
		return nil, fmt.Errorf("create payment confirmation failed: %w", err)
	}
	return confirmation, nil
}
