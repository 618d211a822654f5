package svnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/common/model"
)

type mockQueue struct {
	published  [][]byte
	queues     []string
	publishErr error
}

func (m *mockQueue) Publish(queue string, data []byte, ttl, delay uint32) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.queues = append(m.queues, queue)
	m.published = append(m.published, data)
	return nil
}

type mockEmailSender struct {
	sent    []string
	sendErr error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockWebhookSender struct {
	payloads []interface{}
	sendErr  error
}

func (m *mockWebhookSender) SendWebhook(ctx context.Context, payload interface{}) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

func testJob() *model.OrderPaidNotifyJob {
	return &model.OrderPaidNotifyJob{
		OrderID:       "id-1",
		OrderNumber:   "TT000000000000001",
		CustomerName:  "สมชาย",
		CustomerEmail: "somchai@example.com",
		FinalAmount:   "1300.00",
		PaymentMethod: "PROMPTPAY",
		PaidAt:        1760000000,
	}
}

func TestEnqueueOrderPaid(t *testing.T) {
	queue := &mockQueue{}
	svc := NewNotifyService(queue, "order_notify", &mockEmailSender{}, &mockWebhookSender{}, logger.NopLogger{})

	svc.EnqueueOrderPaid(context.Background(), testJob())

	require.Len(t, queue.published, 1)
	assert.Equal(t, "order_notify", queue.queues[0])

	var job model.OrderPaidNotifyJob
	require.NoError(t, json.Unmarshal(queue.published[0], &job))
	assert.Equal(t, "TT000000000000001", job.OrderNumber)
}

func TestEnqueueFailureDoesNotPanic(t *testing.T) {
	queue := &mockQueue{publishErr: fmt.Errorf("lmstfy down")}
	svc := NewNotifyService(queue, "order_notify", &mockEmailSender{}, &mockWebhookSender{}, logger.NopLogger{})

	// 入队失败只记日志
	svc.EnqueueOrderPaid(context.Background(), testJob())
	assert.Empty(t, queue.published)
}

func TestDispatchSendsEmailAndWebhook(t *testing.T) {
	email := &mockEmailSender{}
	webhook := &mockWebhookSender{}
	svc := NewNotifyService(&mockQueue{}, "order_notify", email, webhook, logger.NopLogger{})

	svc.Dispatch(context.Background(), testJob())

	require.Len(t, email.sent, 1)
	assert.Equal(t, "somchai@example.com", email.sent[0])
	assert.Len(t, webhook.payloads, 1)
}

func TestDispatchEmailFailureStillSendsWebhook(t *testing.T) {
	email := &mockEmailSender{sendErr: fmt.Errorf("smtp down")}
	webhook := &mockWebhookSender{}
	svc := NewNotifyService(&mockQueue{}, "order_notify", email, webhook, logger.NopLogger{})

	svc.Dispatch(context.Background(), testJob())
	assert.Len(t, webhook.payloads, 1, "channels fail independently")
}
