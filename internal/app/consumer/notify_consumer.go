package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svnotify"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/mq/lmstfy"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/common/model"
)

// NotifyConsumer 通知消费者
// 职责：
// 1. 从 lmstfy 队列消费支付完成通知任务
// 2. 解析消息并调用 NotifyService 分发
// 3. 确认消息（ACK）
// 发送失败不重投：去重标记保证同一事件只入队一次，
// 重投会把尽力而为的通知变成重复打扰
type NotifyConsumer struct {
	lmstfyClient  *lmstfy.Client
	notifyService *svnotify.NotifyService
	queueName     string
	logger        logger.Logger

	// 消费配置
	timeout      time.Duration // 拉取消息超时
	ttr          time.Duration // Time-To-Run
	pollInterval time.Duration

	consumed atomic.Int64
	failed   atomic.Int64
}

// Config 消费者配置
type Config struct {
	QueueName    string        // 队列名称
	Timeout      time.Duration // 拉取消息超时
	TTR          time.Duration // Time-To-Run
	PollInterval time.Duration // 出错后的轮询间隔
}

// NewNotifyConsumer 创建通知消费者实例
func NewNotifyConsumer(
	lmstfyClient *lmstfy.Client,
	notifyService *svnotify.NotifyService,
	config *Config,
	log logger.Logger,
) *NotifyConsumer {
	return &NotifyConsumer{
		lmstfyClient:  lmstfyClient,
		notifyService: notifyService,
		queueName:     config.QueueName,
		timeout:       config.Timeout,
		ttr:           config.TTR,
		pollInterval:  config.PollInterval,
		logger:        log,
	}
}

// Start 启动消费循环
func (c *NotifyConsumer) Start(ctx context.Context) error {
	c.logger.Infof(ctx, "notify consumer started: queue=%s timeout=%s ttr=%s", c.queueName, c.timeout, c.ttr)

	for {
		select {
		case <-ctx.Done():
			c.logger.Infof(ctx, "notify consumer stopped: consumed=%d failed=%d", c.consumed.Load(), c.failed.Load())
			return ctx.Err()
		default:
			if err := c.consumeOne(ctx); err != nil {
				c.failed.Inc()
				c.logger.Errorf(ctx, "consume notify job failed: error=%v", err)
				time.Sleep(c.pollInterval)
			}
		}
	}
}

// consumeOne 消费一条消息
func (c *NotifyConsumer) consumeOne(ctx context.Context) error {
	// 1. 从队列拉取消息
	msg, err := c.lmstfyClient.Consume(c.queueName, c.timeout, c.ttr)
	if err != nil {
		return fmt.Errorf("consume message failed: %w", err)
	}
	if msg == nil {
		// 没有消息，继续等待
		return nil
	}

	c.logger.Infof(ctx, "received notify job: job_id=%s", msg.JobID)

	// 2. 解析通知任务
	job, err := c.parseMessage(msg.Data)
	if err != nil {
		c.logger.Errorf(ctx, "parse notify job failed: job_id=%s error=%v", msg.JobID, err)
		// 解析失败，直接 ACK（避免死循环）
		_ = c.lmstfyClient.Ack(c.queueName, msg.JobID)
		return err
	}

	// 3. 分发通知（内部尽力而为，永不返回错误）
	c.notifyService.Dispatch(ctx, job)

	// 4. 确认消息
	if err := c.lmstfyClient.Ack(c.queueName, msg.JobID); err != nil {
		c.logger.Errorf(ctx, "ack notify job failed: job_id=%s error=%v", msg.JobID, err)
		return err
	}

	c.consumed.Inc()
	c.logger.Infof(ctx, "notify job processed: job_id=%s order_number=%s", msg.JobID, job.OrderNumber)
	return nil
}

// parseMessage 解析消息数据
func (c *NotifyConsumer) parseMessage(data []byte) (*model.OrderPaidNotifyJob, error) {
	var job model.OrderPaidNotifyJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal notify job failed: %w", err)
	}

	if job.OrderNumber == "" {
		return nil, fmt.Errorf("order_number is required")
	}
	if job.CustomerEmail == "" {
		return nil, fmt.Errorf("customer_email is required")
	}
	return &job, nil
}
