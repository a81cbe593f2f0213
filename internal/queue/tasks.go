package queue

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/trendsight-boutique/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderRecord 根据已支付的结账会话落库订单
const TaskOrderRecord = constants.TaskOrderRecord

// OrderRecordPayload 订单落库任务载荷
type OrderRecordPayload struct {
	CheckoutSessionID string `json:"checkout_session_id"`
}

// NewOrderRecordTask 创建订单落库任务
func NewOrderRecordTask(payload OrderRecordPayload) (*asynq.Task, error) {
	if strings.TrimSpace(payload.CheckoutSessionID) == "" {
		return nil, errors.New("checkout session id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderRecord, body), nil
}

// ParseOrderRecordPayload 解析订单落库任务载荷
func ParseOrderRecordPayload(task *asynq.Task) (OrderRecordPayload, error) {
	var payload OrderRecordPayload
	if task == nil {
		return payload, errors.New("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	payload.CheckoutSessionID = strings.TrimSpace(payload.CheckoutSessionID)
	if payload.CheckoutSessionID == "" {
		return payload, errors.New("checkout session id is required")
	}
	return payload, nil
}
