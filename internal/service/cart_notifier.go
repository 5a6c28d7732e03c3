package service

import (
	"context"
	"sync"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
)

// CartEvent 购物车变更事件
type CartEvent struct {
	Type        string `json:"type"`
	Key         string `json:"-"`
	ProductID   uint   `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Localize 按语言填充提示文案
func (e CartEvent) Localize(locale string) CartEvent {
	switch e.Type {
	case constants.CartEventProductAdded:
		e.Title = i18n.T(locale, "cart.product_added.title")
		e.Description = i18n.Sprintf(locale, "cart.product_added.description", e.ProductName)
	case constants.CartEventProductRemoved:
		e.Title = i18n.T(locale, "cart.product_removed.title")
		e.Description = i18n.T(locale, "cart.product_removed.description")
	case constants.CartEventQuantityUpdate:
		e.Title = i18n.T(locale, "cart.quantity_updated.title")
		e.Description = i18n.Sprintf(locale, "cart.quantity_updated.description", e.ProductName)
	case constants.CartEventCartCleared:
		e.Title = i18n.T(locale, "cart.cleared.title")
		e.Description = i18n.T(locale, "cart.cleared.description")
	}
	return e
}

// Toast 是否需要在前台弹出提示（数量调整不提示）
func (e CartEvent) Toast() bool {
	return e.Type != constants.CartEventQuantityUpdate
}

// CartNotifier 购物车事件通知
type CartNotifier interface {
	Notify(ctx context.Context, event CartEvent)
}

// LogCartNotifier 将事件写入结构化日志
type LogCartNotifier struct{}

// Notify 实现 CartNotifier
func (LogCartNotifier) Notify(_ context.Context, event CartEvent) {
	logger.Debugw("cart_event",
		"type", event.Type,
		"key", event.Key,
		"product_id", event.ProductID,
	)
}

// CartEventRecorder 收集单次请求内的事件
type CartEventRecorder struct {
	mu     sync.Mutex
	events []CartEvent
}

// NewCartEventRecorder 创建事件收集器
func NewCartEventRecorder() *CartEventRecorder {
	return &CartEventRecorder{}
}

// Notify 实现 CartNotifier
func (r *CartEventRecorder) Notify(_ context.Context, event CartEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events 返回已收集事件的副本
func (r *CartEventRecorder) Events() []CartEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CartEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Toasts 按语言返回需要弹出的提示
func (r *CartEventRecorder) Toasts(locale string) []CartEvent {
	events := r.Events()
	toasts := make([]CartEvent, 0, len(events))
	for _, event := range events {
		if !event.Toast() {
			continue
		}
		toasts = append(toasts, event.Localize(locale))
	}
	return toasts
}

// MultiCartNotifier 依次通知多个接收方
type MultiCartNotifier []CartNotifier

// Notify 实现 CartNotifier
func (m MultiCartNotifier) Notify(ctx context.Context, event CartEvent) {
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		notifier.Notify(ctx, event)
	}
}
