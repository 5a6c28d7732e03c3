package service

import (
	"context"
	"strings"
	"time"

	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/notify/whatsapp"
)

// CheckoutResult 结账提交结果
type CheckoutResult struct {
	OrderID string          `json:"order_id"`
	Summary CheckoutSummary `json:"summary"`
	Link    string          `json:"whatsapp_url"`
	Message string          `json:"message"`
}

// CheckoutService 结账服务
type CheckoutService struct {
	carts          *CartService
	dispatcher     OrderDispatcher
	whatsAppNumber string
	location       *time.Location
	now            func() time.Time
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(carts *CartService, dispatcher OrderDispatcher, whatsAppNumber, timezone string) *CheckoutService {
	if dispatcher == nil {
		dispatcher = LogOrderDispatcher{}
	}
	return &CheckoutService{
		carts:          carts,
		dispatcher:     dispatcher,
		whatsAppNumber: whatsapp.NormalizeNumber(whatsAppNumber),
		location:       loadLocation(timezone),
		now:            time.Now,
	}
}

// Preview 生成结账摘要，不清空购物车
func (s *CheckoutService) Preview(ctx context.Context, session string, customer CustomerInfo) (*CheckoutSummary, error) {
	entries, err := s.carts.Entries(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrCartEmpty
	}
	summary := BuildSummary(entries, customer, s.now().In(s.location))
	return &summary, nil
}

// Submit 校验全部步骤，生成 WhatsApp 深链并清空购物车
func (s *CheckoutService) Submit(ctx context.Context, session string, customer CustomerInfo, locale string) (*CheckoutResult, error) {
	if err := ValidateAll(customer, locale); err != nil {
		return nil, err
	}

	var result *CheckoutResult
	_, err := s.carts.WithCart(ctx, session, nil, func(store *CartStore) error {
		entries := store.Entries()
		if len(entries) == 0 {
			return ErrCartEmpty
		}
		summary := BuildSummary(entries, customer, s.now().In(s.location))
		result = &CheckoutResult{
			OrderID: GenerateOrderID(s.now()),
			Summary: summary,
			Link:    whatsapp.BuildLink(s.whatsAppNumber, summary.Text),
			Message: i18n.T(locale, "checkout.whatsapp_opened"),
		}
		if clearErr := store.ClearCart(ctx); clearErr != nil {
			logger.Warnw("checkout_cart_clear_failed", "key", store.Key(), "error", clearErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrCartEmpty
	}

	if dispatchErr := s.dispatcher.Dispatch(ctx, OrderDispatch{
		OrderID: result.OrderID,
		Link:    result.Link,
		Text:    result.Summary.Text,
	}); dispatchErr != nil {
		logger.Warnw("checkout_dispatch_failed", "order_id", result.OrderID, "error", dispatchErr)
	}
	logger.Infow("checkout_submitted",
		"order_id", result.OrderID,
		"total", result.Summary.Total,
		"item_count", result.Summary.ItemCount,
	)
	return result, nil
}

func loadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warnw("checkout_timezone_invalid", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}
