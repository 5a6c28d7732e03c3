package queue

import (
	"encoding/json"

	"github.com/snaki-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentConfirm 支付结果确认任务
	TaskPaymentConfirm = constants.TaskPaymentConfirm
	// TaskOrderDispatch 订单消息派发任务
	TaskOrderDispatch = constants.TaskOrderDispatch
)

// PaymentConfirmPayload 支付确认任务载荷
type PaymentConfirmPayload struct {
	PaymentID string `json:"payment_id"`
}

// OrderDispatchPayload 订单派发任务载荷
type OrderDispatchPayload struct {
	OrderID string `json:"order_id"`
	Link    string `json:"link"`
	Text    string `json:"text"`
}

// NewPaymentConfirmTask 创建支付确认任务
func NewPaymentConfirmTask(payload PaymentConfirmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentConfirm, body), nil
}

// NewOrderDispatchTask 创建订单派发任务
func NewOrderDispatchTask(payload OrderDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDispatch, body), nil
}
