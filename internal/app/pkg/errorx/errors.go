package errorx

import "errors"

// 业务错误定义
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrChargeNotFound       = errors.New("charge not found")
	ErrSessionNotFound      = errors.New("gateway session not found")
	ErrDiscountNotFound     = errors.New("discount code not found")
	ErrDiscountExpired      = errors.New("discount code expired")
	ErrDiscountExhausted    = errors.New("discount code usage limit reached")
	ErrDiscountBelowMin     = errors.New("order amount below discount minimum")
	ErrDiscountExceedsTotal = errors.New("discount amount exceeds order total")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// IsValidation 判断是否为校验类错误（落库前拒绝，对外 4xx）
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrDiscountNotFound),
		errors.Is(err, ErrDiscountExpired),
		errors.Is(err, ErrDiscountExhausted),
		errors.Is(err, ErrDiscountBelowMin),
		errors.Is(err, ErrDiscountExceedsTotal),
		errors.Is(err, ErrInvalidPaymentMethod):
		return true
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code >= 400 && be.Code < 500
	}
	return false
}
