package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/ginx"
)

// Callback 托管收银台回跳接口
// GET /api/v1/gateway/callback?session_id=xxx
// 回跳只是触发对账的信号，不信任回跳本身：状态以网关重查为准。
// 对账成功跳成功页，其余一律跳取消/待定页，由前端继续轮询
func (h *PaymentHandler) Callback(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		ginx.BadRequest(c, "session_id is required")
		return
	}

	result, err := h.reconcileService.Reconcile(c.Request.Context(), svpayment.Ref{SessionID: sessionID})
	if err != nil {
		// 对账失败不吞掉用户回跳，先送去待定页
		c.Redirect(http.StatusFound, h.cancelURL)
		return
	}

	if result.Status == etpayment.GatewayStatusSuccessful {
		c.Redirect(http.StatusFound, h.successURL+"?order="+result.OrderNumber)
		return
	}
	c.Redirect(http.StatusFound, h.cancelURL+"?order="+result.OrderNumber)
}
