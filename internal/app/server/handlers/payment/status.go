package payment

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/apimodel/response"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/ginx"
)

// 轮询等待上限，防止挂死连接
const maxWaitSeconds = 30

// Status 支付状态查询接口
// GET /api/v1/payment/status?charge_id=xxx&wait=10
// 轮询方永远拿到一个状态：网关不可用降级为 pending，绝不 5xx
func (h *PaymentHandler) Status(c *gin.Context) {
	chargeID := c.Query("charge_id")
	if chargeID == "" {
		ginx.BadRequest(c, "charge_id is required")
		return
	}

	wait := 0
	if waitStr := c.Query("wait"); waitStr != "" {
		if w, err := strconv.Atoi(waitStr); err == nil && w > 0 {
			wait = w
			if wait > maxWaitSeconds {
				wait = maxWaitSeconds
			}
		}
	}

	result, err := h.reconcileService.ReconcileWithWait(
		c.Request.Context(),
		svpayment.Ref{ChargeID: chargeID},
		time.Duration(wait)*time.Second,
	)
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromReconcileResult(result))
}
