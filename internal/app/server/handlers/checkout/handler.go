package checkout

import "github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svcheckout"

// CheckoutHandler 结账 HTTP 处理器
type CheckoutHandler struct {
	checkoutService *svcheckout.CheckoutService
}

// NewCheckoutHandler 创建结账处理器实例
func NewCheckoutHandler(checkoutService *svcheckout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}
