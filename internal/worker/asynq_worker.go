package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/provider"
	"github.com/snaki-next/internal/queue"
	"github.com/snaki-next/internal/service"

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
	mux.HandleFunc(queue.TaskPaymentConfirm, c.handlePaymentConfirm)
	mux.HandleFunc(queue.TaskOrderDispatch, c.handleOrderDispatch)
}

func (c *Consumer) handlePaymentConfirm(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_confirm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentConfirmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_confirm_unmarshal_failed", "error", err)
		return err
	}
	paymentID := strings.TrimSpace(payload.PaymentID)
	if paymentID == "" {
		logger.Debugw("worker_payment_confirm_skip_invalid_payload")
		return nil
	}
	if c.PaymentService == nil || !c.PaymentService.Enabled() {
		logger.Warnw("worker_payment_confirm_skip_payment_disabled", "payment_id", paymentID)
		return nil
	}
	result, err := c.PaymentService.HandleCallback(ctx, paymentID, i18n.DefaultLocale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentInvalid), errors.Is(err, service.ErrPaymentGatewayInvalid):
			logger.Warnw("worker_payment_confirm_skip_invalid", "payment_id", paymentID, "error", err)
			return nil
		default:
			logger.Warnw("worker_payment_confirm_failed", "payment_id", paymentID, "error", err)
			return err
		}
	}
	logger.Infow("worker_payment_confirm_done",
		"payment_id", paymentID,
		"status", result.Status,
		"order_id", result.OrderID,
		"success", result.Success,
	)
	return nil
}

func (c *Consumer) handleOrderDispatch(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Link) == "" {
		logger.Debugw("worker_order_dispatch_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	sink := c.OrderSink
	if sink == nil {
		sink = service.LogOrderDispatcher{}
	}
	if err := sink.Dispatch(ctx, service.OrderDispatch{
		OrderID: payload.OrderID,
		Link:    payload.Link,
		Text:    payload.Text,
	}); err != nil {
		logger.Warnw("worker_order_dispatch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
