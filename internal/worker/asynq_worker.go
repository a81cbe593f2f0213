package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/provider"
	"github.com/trendsight-boutique/internal/queue"
	"github.com/trendsight-boutique/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderRecord, c.handleOrderRecord)
}

// handleOrderRecord 支付成功后落库订单；载荷错误不重试，支付未完成（如 boleto 待付）按退避重试
func (c *Consumer) handleOrderRecord(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_record_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderRecordPayload(task)
	if err != nil {
		logger.Warnw("worker_order_record_payload_invalid", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.Container == nil || c.OrderService == nil {
		return errors.New("order service unavailable")
	}

	order, err := c.OrderService.RecordFromCheckout(ctx, payload.CheckoutSessionID)
	if err != nil {
		if errors.Is(err, service.ErrCheckoutSessionID) || errors.Is(err, service.ErrCheckoutUnavailable) {
			logger.Warnw("worker_order_record_skip", "checkout_session_id", payload.CheckoutSessionID, "error", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Warnw("worker_order_record_failed", "checkout_session_id", payload.CheckoutSessionID, "error", err)
		return err
	}
	logger.Infow("worker_order_record_done",
		"checkout_session_id", payload.CheckoutSessionID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
	)
	return nil
}
