package service

import (
	"context"
	"sync"

	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/queue"
)

// OrderDispatch 待派发的 WhatsApp 订单消息
type OrderDispatch struct {
	OrderID string `json:"order_id"`
	Link    string `json:"link"`
	Text    string `json:"text"`
}

// OrderDispatcher 订单消息派发
type OrderDispatcher interface {
	Dispatch(ctx context.Context, order OrderDispatch) error
}

// LogOrderDispatcher 记录派发链接
type LogOrderDispatcher struct{}

// Dispatch 实现 OrderDispatcher
func (LogOrderDispatcher) Dispatch(_ context.Context, order OrderDispatch) error {
	logger.Infow("order_dispatched",
		"order_id", order.OrderID,
		"link", order.Link,
	)
	return nil
}

// QueueOrderDispatcher 通过异步队列派发，队列未启用时直接派发
type QueueOrderDispatcher struct {
	client   *queue.Client
	fallback OrderDispatcher
}

// NewQueueOrderDispatcher 创建队列派发器
func NewQueueOrderDispatcher(client *queue.Client, fallback OrderDispatcher) *QueueOrderDispatcher {
	if fallback == nil {
		fallback = LogOrderDispatcher{}
	}
	return &QueueOrderDispatcher{client: client, fallback: fallback}
}

// Dispatch 实现 OrderDispatcher
func (d *QueueOrderDispatcher) Dispatch(ctx context.Context, order OrderDispatch) error {
	if d.client == nil || !d.client.Enabled() {
		return d.fallback.Dispatch(ctx, order)
	}
	if err := d.client.EnqueueOrderDispatch(queue.OrderDispatchPayload{
		OrderID: order.OrderID,
		Link:    order.Link,
		Text:    order.Text,
	}, 0); err != nil {
		logger.Warnw("order_dispatch_enqueue_failed", "order_id", order.OrderID, "error", err)
		return d.fallback.Dispatch(ctx, order)
	}
	return nil
}

// RecordingOrderDispatcher 记录派发内容
type RecordingOrderDispatcher struct {
	mu     sync.Mutex
	orders []OrderDispatch
}

// Dispatch 实现 OrderDispatcher
func (d *RecordingOrderDispatcher) Dispatch(_ context.Context, order OrderDispatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, order)
	return nil
}

// Orders 已派发订单
func (d *RecordingOrderDispatcher) Orders() []OrderDispatch {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]OrderDispatch, len(d.orders))
	copy(out, d.orders)
	return out
}
