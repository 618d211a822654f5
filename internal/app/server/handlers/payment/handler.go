package payment

import (
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svconfirm"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
)

// PaymentHandler 支付 HTTP 处理器
type PaymentHandler struct {
	reconcileService    *svpayment.ReconcileService
	confirmationService *svconfirm.ConfirmationService
	successURL          string // 托管收银台回跳后的前端成功页
	cancelURL           string // 前端取消/待定页
}

// NewPaymentHandler 创建支付处理器实例
func NewPaymentHandler(
	reconcileService *svpayment.ReconcileService,
	confirmationService *svconfirm.ConfirmationService,
	successURL, cancelURL string,
) *PaymentHandler {
	return &PaymentHandler{
		reconcileService:    reconcileService,
		confirmationService: confirmationService,
		successURL:          successURL,
		cancelURL:           cancelURL,
	}
}
