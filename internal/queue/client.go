package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	paymentConfirmMaxRetry  = 3
	paymentConfirmTimeout   = 30 * time.Second
	paymentConfirmRetention = 24 * time.Hour
	orderDispatchMaxRetry   = 5
)

// Client 队列客户端封装，未启用时所有入队操作为空操作
type Client struct {
	client       *asynq.Client
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{defaultQueue: DefaultQueue}, nil
	}
	return &Client{
		client:       asynq.NewClient(buildRedisOpt(cfg)),
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueuePaymentConfirm 推送支付确认任务
// 同一支付单的重复回调按任务 ID 去重，保留 24 小时
func (c *Client) EnqueuePaymentConfirm(payload PaymentConfirmPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewPaymentConfirmTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{
		asynq.Queue(c.defaultQueue),
		asynq.MaxRetry(paymentConfirmMaxRetry),
		asynq.Timeout(paymentConfirmTimeout),
		asynq.Retention(paymentConfirmRetention),
		asynq.TaskID(paymentConfirmTaskID(payload.PaymentID)),
	}, opts...)
	return c.enqueue(task, "payment_id", payload.PaymentID, options)
}

// EnqueueOrderDispatch 推送订单派发任务
func (c *Client) EnqueueOrderDispatch(payload OrderDispatchPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	task, err := NewOrderDispatchTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.defaultQueue),
		asynq.MaxRetry(orderDispatchMaxRetry),
		asynq.ProcessIn(delay),
	}
	if orderID := strings.TrimSpace(payload.OrderID); orderID != "" {
		options = append(options, asynq.TaskID(TaskOrderDispatch+":"+orderID))
	}
	return c.enqueue(task, "order_id", payload.OrderID, options)
}

func (c *Client) enqueue(task *asynq.Task, idKey, id string, options []asynq.Option) error {
	info, err := c.client.Enqueue(task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debugw("queue_task_duplicated", "type", task.Type(), idKey, id)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debugw("queue_task_enqueued", "type", task.Type(), "task_id", info.ID, idKey, id)
	return nil
}

func paymentConfirmTaskID(paymentID string) string {
	return TaskPaymentConfirm + ":" + strings.TrimSpace(paymentID)
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if trimmed := strings.TrimSpace(cfg.Host); trimmed != "" {
			host = trimmed
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
