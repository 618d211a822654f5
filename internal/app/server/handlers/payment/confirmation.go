package payment

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/apimodel/response"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svconfirm"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/ginx"
)

// confirmationForm 转账凭证表单（multipart）
type confirmationForm struct {
	OrderNumber string `form:"order_number" binding:"required"`
	Amount      string `form:"amount" binding:"required"`
	BankName    string `form:"bank_name" binding:"required"`
	Note        string `form:"note"`
}

// SubmitConfirmation 转账凭证提交接口
// POST /api/v1/payment-confirmation (multipart/form-data, 字段 slip 为凭证图片)
func (h *PaymentHandler) SubmitConfirmation(c *gin.Context) {
	var form confirmationForm
	if err := c.ShouldBind(&form); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil || !amount.IsPositive() {
		ginx.BadRequest(c, "invalid amount: "+form.Amount)
		return
	}

	fileHeader, err := c.FormFile("slip")
	if err != nil {
		ginx.BadRequest(c, "slip image is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		ginx.BadRequest(c, "cannot read slip image")
		return
	}
	defer file.Close()

	confirmation, err := h.confirmationService.Submit(c.Request.Context(), &svconfirm.SubmitInput{
		OrderNumber:  form.OrderNumber,
		Amount:       amount,
		BankName:     form.BankName,
		Note:         form.Note,
		SlipFilename: fileHeader.Filename,
		SlipReader:   file,
	})
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromConfirmationEntity(confirmation))
}
