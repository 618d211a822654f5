package svnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/common/model"
)

// Queue 通知任务队列接口
type Queue interface {
	Publish(queue string, data []byte, ttl, delay uint32) error
}

// EmailSender 事务邮件发送接口
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// WebhookSender 运营 webhook 发送接口
type WebhookSender interface {
	SendWebhook(ctx context.Context, payload interface{}) error
}

// NotifyService 通知分发服务
// 职责：
// 1. 支付确认后把通知任务投递到队列（入队失败只记日志）
// 2. 消费侧把任务分发到邮件与 webhook（发送失败只记日志）
// 通知是尽力而为的旁路，任何失败都不允许影响调用方的成功路径
type NotifyService struct {
	queue     Queue
	queueName string
	email     EmailSender
	webhook   WebhookSender
	logger    logger.Logger
}

// NewNotifyService 创建通知服务实例
func NewNotifyService(
	queue Queue,
	queueName string,
	email EmailSender,
	webhook WebhookSender,
	log logger.Logger,
) *NotifyService {
	return &NotifyService{
		queue:     queue,
		queueName: queueName,
		email:     email,
		webhook:   webhook,
		logger:    log,
	}
}

// EnqueueOrderPaid 投递支付完成通知任务
// 去重由调用方的通知标记保证，同一完成事件只会进入队列一次
func (s *NotifyService) EnqueueOrderPaid(ctx context.Context, job *model.OrderPaidNotifyJob) {
	data, err := json.Marshal(job)
	if err != nil {
		s.logger.Errorf(ctx, "marshal notify job failed: order_number=%s, error=%v", job.OrderNumber, err)
		return
	}

	if err := s.queue.Publish(s.queueName, data, 3600, 0); err != nil {
		// 状态已落库，通知入队失败不回传给调用方
		s.logger.Errorf(ctx, "publish notify job failed: order_number=%s, error=%v", job.OrderNumber, err)
	}
}

// Dispatch 分发一条通知任务（消费侧调用）
func (s *NotifyService) Dispatch(ctx context.Context, job *model.OrderPaidNotifyJob) {
	if err := s.email.SendEmail(ctx,
		job.CustomerEmail,
		fmt.Sprintf("Treetelu - ยืนยันการชำระเงิน #%s", job.OrderNumber),
		orderPaidEmailBody(job),
	); err != nil {
		s.logger.Warnf(ctx, "send order paid email failed: order_number=%s, error=%v", job.OrderNumber, err)
	}

	if err := s.webhook.SendWebhook(ctx, map[string]interface{}{
		"content": fmt.Sprintf("💰 ชำระเงินสำเร็จ %s | %s THB | %s",
			job.OrderNumber, job.FinalAmount, job.PaymentMethod),
	}); err != nil {
		s.logger.Warnf(ctx, "send order paid webhook failed: order_number=%s, error=%v", job.OrderNumber, err)
	}
}

// orderPaidEmailBody 支付完成邮件正文
func orderPaidEmailBody(job *model.OrderPaidNotifyJob) string {
	paidAt := time.Unix(job.PaidAt, 0).Format("2006-01-02 15:04:05")
	return fmt.Sprintf(
		"<p>สวัสดีคุณ %s</p>"+
			"<p>เราได้รับการชำระเงินสำหรับคำสั่งซื้อ <b>%s</b> จำนวน <b>%s</b> บาท เรียบร้อยแล้ว (%s)</p>"+
			"<p>ขอบคุณที่อุดหนุน Treetelu</p>",
		job.CustomerName, job.OrderNumber, job.FinalAmount, paidAt,
	)
}
