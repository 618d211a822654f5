package model

// OrderPaidNotifyJob 订单支付完成通知任务
// 由对账服务投递到 lmstfy 通知队列，通知消费者消费后分发到邮件与 webhook
type OrderPaidNotifyJob struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	FinalAmount   string `json:"final_amount"`
	PaymentMethod string `json:"payment_method"`
	PaidAt        int64  `json:"paid_at"` // Unix timestamp
}
