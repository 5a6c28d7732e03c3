package fedapay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

var (
	ErrConfigInvalid   = errors.New("fedapay config invalid")
	ErrRequestInvalid  = errors.New("fedapay request invalid")
	ErrRequestFailed   = errors.New("fedapay request failed")
	ErrResponseInvalid = errors.New("fedapay response invalid")
	ErrCircuitOpen     = errors.New("fedapay relay circuit open")
)

// 支付状态
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

const (
	createPaymentPath = "/api/create-payment"
	paymentStatusPath = "/api/payment-status/"
	maxResponseBytes  = 1 << 20
)

// Config FedaPay 中转配置
type Config struct {
	RelayURL    string `json:"relay_url"`    // 中转服务地址，如 http://localhost:5000
	PublicKey   string `json:"public_key"`   // 公钥（前端收银台使用）
	Environment string `json:"environment"`  // sandbox / live
	Currency    string `json:"currency"`     // 默认 XOF
	CallbackURL string `json:"callback_url"` // 支付完成跳转地址
	CancelURL   string `json:"cancel_url"`   // 取消支付跳转地址
	Simulation  bool   `json:"simulation"`   // 模拟模式：状态查询返回固定的 approved 结果
	TimeoutMS   int    `json:"timeout_ms"`
}

// BreakerSettings 熔断配置
type BreakerSettings struct {
	MaxFailures    int
	OpenSeconds    int
	HalfOpenProbes int
}

// Customer 付款人信息
type Customer struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number"`
}

// CreateInput 创建支付输入，Amount 单位为 FCFA
type CreateInput struct {
	Amount   int64
	Customer Customer
	Metadata map[string]interface{}
}

// CreateResult 创建支付结果
type CreateResult struct {
	PaymentURL string
	Raw        map[string]interface{}
}

// Payment 支付状态查询结果，Amount 单位为 FCFA
type Payment struct {
	Status    string                 `json:"status"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Reference string                 `json:"reference"`
	Customer  Customer               `json:"customer"`
	Metadata  map[string]interface{} `json:"metadata"`
	Message   string                 `json:"message"`
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.RelayURL) == "" {
		return fmt.Errorf("%w: relay_url is required", ErrConfigInvalid)
	}
	parsed, err := url.Parse(strings.TrimSpace(cfg.RelayURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: relay_url is invalid", ErrConfigInvalid)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Environment)) {
	case "", "sandbox", "live":
	default:
		return fmt.Errorf("%w: environment must be sandbox or live", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) normalize() {
	c.RelayURL = strings.TrimRight(strings.TrimSpace(c.RelayURL), "/")
	c.PublicKey = strings.TrimSpace(c.PublicKey)
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.CallbackURL = strings.TrimSpace(c.CallbackURL)
	c.CancelURL = strings.TrimSpace(c.CancelURL)
	if c.Environment == "" {
		c.Environment = "sandbox"
	}
	if c.Currency == "" {
		c.Currency = "XOF"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 8000
	}
}

// Client 中转服务客户端，所有请求经过熔断器
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[relayResponse]
	now        func() time.Time
}

type relayResponse struct {
	status int
	body   []byte
}

// NewClient 创建客户端
func NewClient(cfg Config, breaker BreakerSettings) (*Client, error) {
	cfg.normalize()
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		breaker:    newBreaker(breaker),
		now:        time.Now,
	}, nil
}

// Config 返回归一化后的配置
func (c *Client) Config() Config {
	return c.cfg
}

func newBreaker(settings BreakerSettings) *gobreaker.CircuitBreaker[relayResponse] {
	maxFailures := settings.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	openSeconds := settings.OpenSeconds
	if openSeconds <= 0 {
		openSeconds = 30
	}
	probes := settings.HalfOpenProbes
	if probes <= 0 {
		probes = 1
	}
	return gobreaker.NewCircuitBreaker[relayResponse](gobreaker.Settings{
		Name:        "fedapay-relay",
		MaxRequests: uint32(probes),
		Timeout:     time.Duration(openSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
	})
}

// CreatePayment 通过中转服务创建支付，金额以最小单位（FCFA × 100）发送
func (c *Client) CreatePayment(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.Amount <= 0 || input.Amount > MaxAmount {
		return nil, fmt.Errorf("%w: amount %d out of range", ErrRequestInvalid, input.Amount)
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	body := map[string]interface{}{
		"amount":   ToMinorUnits(input.Amount),
		"customer": input.Customer,
		"metadata": metadata,
	}

	resp, err := c.do(ctx, http.MethodPost, c.cfg.RelayURL+createPaymentPath, body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		PaymentURL string `json:"paymentUrl"`
		Error      string `json:"error"`
	}
	parseErr := json.Unmarshal(resp.body, &parsed)
	if resp.status < 200 || resp.status >= 300 {
		return nil, fmt.Errorf("%w: http status %d: %s", ErrRequestFailed, resp.status, relayErrorText(parsed.Error))
	}
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, parseErr)
	}
	if strings.TrimSpace(parsed.PaymentURL) == "" {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, relayErrorText(parsed.Error))
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(resp.body, &raw)
	return &CreateResult{
		PaymentURL: strings.TrimSpace(parsed.PaymentURL),
		Raw:        raw,
	}, nil
}

// CheckPaymentStatus 查询支付状态
// 模拟模式下返回固定的 approved 支付
func (c *Client) CheckPaymentStatus(ctx context.Context, paymentID string) (*Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrRequestInvalid)
	}
	if c.cfg.Simulation {
		return c.simulatedPayment(), nil
	}

	resp, err := c.do(ctx, http.MethodGet, c.cfg.RelayURL+paymentStatusPath+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.status)
	}
	var payment Payment
	if err := json.Unmarshal(resp.body, &payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if strings.TrimSpace(payment.Status) == "" {
		return nil, fmt.Errorf("%w: missing status", ErrResponseInvalid)
	}
	payment.Status = strings.ToLower(strings.TrimSpace(payment.Status))
	payment.Amount = FromMinorUnits(payment.Amount)
	payment.Message = StatusMessage(payment.Status)
	return &payment, nil
}

func (c *Client) simulatedPayment() *Payment {
	return &Payment{
		Status:    StatusApproved,
		Amount:    FromMinorUnits(10000),
		Currency:  c.cfg.Currency,
		Reference: fmt.Sprintf("FED-%d", c.now().UnixMilli()),
		Customer: Customer{
			Firstname:   "Test",
			Lastname:    "User",
			PhoneNumber: "+22912345678",
		},
		Metadata: map[string]interface{}{
			"order_id":         "test-order",
			"customer_id":      "test-customer",
			"delivery_address": "Test Address",
			"delivery_city":    "Cotonou",
			"delivery_date":    "2024-01-15",
			"delivery_time":    "14:30",
			"whatsapp_number":  "+22987654321",
			"cart_items":       "[]",
			"cart_total":       100,
			"delivery_fee":     500,
			"total_amount":     600,
		},
		Message: StatusMessage(StatusApproved),
	}
}

// do 发送请求；网络错误与 5xx 计入熔断失败
func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}) (relayResponse, error) {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return relayResponse{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		body = encoded
	}

	resp, err := c.breaker.Execute(func() (relayResponse, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return relayResponse{}, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return relayResponse{}, err
		}
		defer httpResp.Body.Close()
		respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
		if err != nil {
			return relayResponse{}, err
		}
		result := relayResponse{status: httpResp.StatusCode, body: respBody}
		if httpResp.StatusCode >= 500 {
			return result, fmt.Errorf("http status %d", httpResp.StatusCode)
		}
		return result, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return relayResponse{}, fmt.Errorf("%w: %w: %v", ErrRequestFailed, ErrCircuitOpen, err)
		}
		if resp.status >= 500 {
			// 5xx 保留响应体，以便读取中转服务返回的 error 字段
			return resp, nil
		}
		return relayResponse{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return resp, nil
}

func relayErrorText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Erreur lors de la création du paiement"
	}
	return text
}

// StatusMessage 支付状态提示文案
func StatusMessage(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusPending:
		return "Paiement en attente de confirmation"
	case StatusApproved:
		return "Paiement approuvé avec succès"
	case StatusDeclined:
		return "Paiement refusé"
	case StatusFailed:
		return "Paiement échoué"
	case StatusCancelled:
		return "Paiement annulé"
	case StatusExpired:
		return "Paiement expiré"
	default:
		return "Statut inconnu"
	}
}

// MaxAmount 可转换为最小单位而不溢出的最大金额（FCFA）
const MaxAmount = math.MaxInt64 / 100

// ToMinorUnits FCFA 转最小单位，调用方需保证 amount <= MaxAmount
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}

// FromMinorUnits 最小单位转 FCFA
func FromMinorUnits(amount int64) int64 {
	return amount / 100
}
