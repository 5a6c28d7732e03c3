package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/notify/whatsapp"
	"github.com/snaki-next/internal/payment/fedapay"
	"github.com/snaki-next/internal/queue"

	"github.com/google/uuid"
)

const paymentCreateFailedMessage = "Impossible de créer le paiement. Veuillez réessayer."

// PaymentGateway 支付网关
type PaymentGateway interface {
	CreatePayment(ctx context.Context, input fedapay.CreateInput) (*fedapay.CreateResult, error)
	CheckStatus(ctx context.Context, paymentID string) (*fedapay.Payment, error)
}

// FedaPayGateway FedaPay 中转网关
type FedaPayGateway struct {
	client *fedapay.Client
}

// NewFedaPayGateway 创建 FedaPay 网关
func NewFedaPayGateway(client *fedapay.Client) *FedaPayGateway {
	return &FedaPayGateway{client: client}
}

// CreatePayment 实现 PaymentGateway
func (g *FedaPayGateway) CreatePayment(ctx context.Context, input fedapay.CreateInput) (*fedapay.CreateResult, error) {
	return g.client.CreatePayment(ctx, input)
}

// CheckStatus 实现 PaymentGateway
func (g *FedaPayGateway) CheckStatus(ctx context.Context, paymentID string) (*fedapay.Payment, error) {
	return g.client.CheckPaymentStatus(ctx, paymentID)
}

// OrderData 待支付订单
type OrderData struct {
	Items       []models.CartEntry
	Subtotal    int64
	DeliveryFee int64
	Total       int64
}

// PaymentResult 创建支付结果
type PaymentResult struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"payment_url,omitempty"`
	OrderID    string `json:"order_id"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CallbackResult 支付回调处理结果
type CallbackResult struct {
	Success   bool         `json:"success"`
	Queued    bool         `json:"queued,omitempty"`
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Amount    models.Money `json:"amount"`
	Currency  string       `json:"currency,omitempty"`
	Reference string       `json:"reference,omitempty"`
	OrderID   string       `json:"order_id,omitempty"`
	Link      string       `json:"whatsapp_url,omitempty"`
}

// PaymentServiceOptions 支付服务配置
type PaymentServiceOptions struct {
	Enabled        bool
	WhatsAppNumber string
	Timezone       string
}

// PaymentService 在线支付服务
type PaymentService struct {
	carts          *CartService
	gateway        PaymentGateway
	dispatcher     OrderDispatcher
	queueClient    *queue.Client
	enabled        bool
	whatsAppNumber string
	location       *time.Location
	now            func() time.Time
}

// NewPaymentService 创建支付服务
func NewPaymentService(carts *CartService, gateway PaymentGateway, dispatcher OrderDispatcher, queueClient *queue.Client, opts PaymentServiceOptions) *PaymentService {
	if dispatcher == nil {
		dispatcher = LogOrderDispatcher{}
	}
	return &PaymentService{
		carts:          carts,
		gateway:        gateway,
		dispatcher:     dispatcher,
		queueClient:    queueClient,
		enabled:        opts.Enabled && gateway != nil,
		whatsAppNumber: whatsapp.NormalizeNumber(opts.WhatsAppNumber),
		location:       loadLocation(opts.Timezone),
		now:            time.Now,
	}
}

// Enabled 是否启用在线支付
func (s *PaymentService) Enabled() bool {
	return s != nil && s.enabled
}

// GenerateOrderID 生成订单编号 snaki-<毫秒时间戳>-<6 位随机串>
func GenerateOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s-%d-%s", constants.OrderIDPrefix, now.UnixMilli(), suffix)
}

// ValidatePaymentData 校验支付数据，收集全部错误
func ValidatePaymentData(customer CustomerInfo, order OrderData) error {
	customer = customer.Normalize()
	var fields, messages []string
	add := func(field, message string) {
		fields = append(fields, field)
		messages = append(messages, message)
	}
	if customer.FirstName == "" || customer.LastName == "" {
		add("name", "Nom et prénom requis")
	}
	if customer.Email == "" {
		add("email", "Email requis")
	}
	if customer.Phone == "" {
		add("phone", "Numéro de téléphone requis")
	}
	if customer.Address == "" || customer.City == "" {
		add("address", "Adresse de livraison requise")
	}
	if customer.DeliveryDate == "" || customer.DeliveryTime == "" {
		add("delivery", "Date et heure de livraison requises")
	}
	if len(order.Items) == 0 {
		add("cart", "Panier vide")
	}
	if order.Total <= 0 {
		add("amount", "Montant invalide")
	}
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{
		Step:     constants.CheckoutStepConfirm,
		Fields:   fields,
		Messages: messages,
		base:     ErrPaymentInvalid,
	}
}

// CreatePayment 为当前购物车创建支付
func (s *PaymentService) CreatePayment(ctx context.Context, session string, customer CustomerInfo, locale string) (*PaymentResult, error) {
	if !s.Enabled() {
		return nil, ErrPaymentDisabled
	}
	entries, err := s.carts.Entries(ctx, session)
	if err != nil {
		return nil, err
	}
	customer = customer.Normalize()
	subtotal := CartTotal(entries)
	order := OrderData{
		Items:       entries,
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee(subtotal),
	}
	order.Total = order.Subtotal + order.DeliveryFee
	if len(entries) == 0 {
		order.Total = 0
	}
	if err := ValidatePaymentData(customer, order); err != nil {
		return nil, err
	}

	cartItems, err := EncodeCart(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentInvalid, err)
	}
	orderID := GenerateOrderID(s.now())
	created, err := s.gateway.CreatePayment(ctx, fedapay.CreateInput{
		Amount: order.Total,
		Customer: fedapay.Customer{
			Firstname:   customer.FirstName,
			Lastname:    customer.LastName,
			Email:       customer.Email,
			PhoneNumber: customer.Phone,
		},
		Metadata: map[string]interface{}{
			"order_id":         orderID,
			"customer_id":      session,
			"delivery_address": customer.Address,
			"delivery_city":    customer.City,
			"delivery_date":    customer.DeliveryDate,
			"delivery_time":    customer.DeliveryTime,
			"whatsapp_number":  customer.WhatsAppNumber,
			"cart_items":       cartItems,
			"cart_total":       order.Subtotal,
			"delivery_fee":     order.DeliveryFee,
			"total_amount":     order.Total,
		},
	})
	if err != nil {
		logger.Warnw("payment_create_failed", "order_id", orderID, "error", err)
		return &PaymentResult{
			Success: false,
			OrderID: orderID,
			Error:   paymentCreateFailedMessage,
		}, mapGatewayError(err)
	}

	logger.Infow("payment_created", "order_id", orderID, "amount", order.Total)
	return &PaymentResult{
		Success:    true,
		PaymentURL: created.PaymentURL,
		OrderID:    orderID,
		Message:    i18n.T(locale, "payment.created"),
	}, nil
}

// EnqueueCallback 队列启用时异步确认支付，返回是否已入队
func (s *PaymentService) EnqueueCallback(paymentID string) (bool, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return false, fmt.Errorf("%w: payment id is required", ErrPaymentInvalid)
	}
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return false, nil
	}
	if err := s.queueClient.EnqueuePaymentConfirm(queue.PaymentConfirmPayload{PaymentID: paymentID}); err != nil {
		return false, fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}
	return true, nil
}

// HandleCallback 查询支付状态；已支付时生成订单消息并派发
func (s *PaymentService) HandleCallback(ctx context.Context, paymentID string, locale string) (*CallbackResult, error) {
	if !s.Enabled() {
		return nil, ErrPaymentDisabled
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrPaymentInvalid)
	}
	payment, err := s.gateway.CheckStatus(ctx, paymentID)
	if err != nil {
		logger.Warnw("payment_status_check_failed", "payment_id", paymentID, "error", err)
		return nil, mapGatewayError(err)
	}

	result := &CallbackResult{
		Status:    payment.Status,
		Message:   payment.Message,
		Amount:    models.NewMoneyFromInt(payment.Amount),
		Currency:  payment.Currency,
		Reference: payment.Reference,
		OrderID:   metadataString(payment.Metadata, "order_id"),
	}
	if payment.Status != fedapay.StatusApproved {
		return result, nil
	}

	text, err := BuildPaidOrderText(payment, s.now().In(s.location))
	if err != nil {
		return nil, err
	}
	result.Link = whatsapp.BuildLink(s.whatsAppNumber, text)
	if err := s.dispatcher.Dispatch(ctx, OrderDispatch{
		OrderID: result.OrderID,
		Link:    result.Link,
		Text:    text,
	}); err != nil {
		logger.Warnw("payment_order_dispatch_failed", "order_id", result.OrderID, "error", err)
	}
	result.Success = true
	result.Message = i18n.T(locale, "payment.confirmed")
	logger.Infow("payment_confirmed", "payment_id", paymentID, "order_id", result.OrderID)
	return result, nil
}

// BuildPaidOrderText 根据支付元数据生成已支付订单消息
func BuildPaidOrderText(payment *fedapay.Payment, now time.Time) (string, error) {
	if payment == nil {
		return "", fmt.Errorf("%w: payment is nil", ErrPaymentGatewayInvalid)
	}
	metadata := payment.Metadata
	entries, err := DecodeCart(metadataString(metadata, "cart_items"))
	if err != nil {
		return "", fmt.Errorf("%w: cart_items: %v", ErrPaymentGatewayInvalid, err)
	}
	lines := make([]SummaryLine, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, SummaryLine{
			ProductID:    entry.ProductID,
			Name:         entry.Name,
			Quantity:     entry.Quantity,
			OptionLabels: SelectedChoiceLabels(entry),
			UnitPrice:    models.NewMoneyFromInt(UnitPrice(entry)),
			LineTotal:    models.NewMoneyFromInt(LineTotal(entry)),
		})
	}
	customer := payment.Customer
	return orderMessage{
		header:        "🍕 *NOUVELLE COMMANDE SNAKI* 🍕",
		orderID:       metadataString(metadata, "order_id"),
		reference:     payment.Reference,
		name:          strings.TrimSpace(customer.Firstname + " " + customer.Lastname),
		phone:         customer.PhoneNumber,
		whatsapp:      metadataString(metadata, "whatsapp_number"),
		email:         customer.Email,
		address:       metadataString(metadata, "delivery_address"),
		city:          metadataString(metadata, "delivery_city"),
		deliveryDate:  metadataString(metadata, "delivery_date"),
		deliveryTime:  metadataString(metadata, "delivery_time"),
		lines:         lines,
		subtotal:      metadataInt64(metadata, "cart_total"),
		fee:           metadataInt64(metadata, "delivery_fee"),
		total:         metadataInt64(metadata, "total_amount"),
		paymentMethod: "FedaPay - Paiement confirmé ✅",
		createdAt:     now,
		status:        "Paiement confirmé - Prêt pour la livraison",
	}.render(), nil
}

func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, fedapay.ErrRequestInvalid):
		return fmt.Errorf("%w: %v", ErrPaymentInvalid, err)
	case errors.Is(err, fedapay.ErrCircuitOpen):
		return fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	case errors.Is(err, fedapay.ErrResponseInvalid):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}
}

func metadataString(metadata map[string]interface{}, key string) string {
	raw, ok := metadata[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func metadataInt64(metadata map[string]interface{}, key string) int64 {
	switch v := metadata[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	default:
		return 0
	}
}
