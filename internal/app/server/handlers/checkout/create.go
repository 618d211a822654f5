package checkout

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/apimodel/request"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/apimodel/response"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/ginx"
)

// Create 结账接口
// @Summary      提交结账
// @Description  创建订单并按支付方式编排后续流程；携带 Idempotency-Key 头可安全重试
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "幂等键"
// @Param        body  body  request.CheckoutRequest  true  "结账请求"
// @Success      200  {object}  ginx.Response{data=response.CheckoutResponse}
// @Failure      400  {object}  ginx.Response
// @Failure      502  {object}  ginx.Response
// @Router       /api/v1/checkout [post]
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	input, err := req.ToCheckoutInput(c.GetHeader("Idempotency-Key"))
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		switch {
		case errorx.IsValidation(err):
			ginx.BadRequest(c, err.Error())
		case errors.Is(err, errorx.ErrGatewayUnavailable):
			ginx.BadGateway(c, "payment gateway unavailable, please retry")
		default:
			ginx.InternalError(c, err.Error())
		}
		return
	}

	ginx.Success(c, response.FromCheckoutResult(result))
}
