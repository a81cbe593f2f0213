package queue

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/constants"
	"github.com/trendsight-boutique/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 订单落库等关键任务
	CriticalQueue = constants.QueueCritical

	defaultConcurrency   = 10
	orderRecordMaxRetry  = 10
	workerShutdownWindow = 8 * time.Second
)

// ErrInvalidConfig 队列配置不合法
var ErrInvalidConfig = errors.New("invalid queue config")

// Client asynq 客户端；未启用时所有投递静默跳过
type Client struct {
	inner *asynq.Client
}

// NewClient 按配置创建客户端，cfg 为空或未启用时返回禁用的客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d", ErrInvalidConfig, cfg.Port)
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}, nil
}

// Enabled 是否真正连接了队列
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 释放连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueOrderRecord 投递订单落库任务。
// 任务 ID 取自结账会话 ID，同一会话多次确认只会留下一个任务。
func (c *Client) EnqueueOrderRecord(payload OrderRecordPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderRecordTask(payload)
	if err != nil {
		return err
	}
	base := []asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.MaxRetry(orderRecordMaxRetry),
		asynq.TaskID(orderRecordTaskID(payload.CheckoutSessionID)),
	}
	info, err := c.inner.Enqueue(task, append(base, opts...)...)
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict), errors.Is(err, asynq.ErrDuplicateTask):
		logger.Debugw("queue_order_record_duplicate", "checkout_session_id", payload.CheckoutSessionID)
		return nil
	case err != nil:
		return fmt.Errorf("enqueue order record: %w", err)
	}
	logger.Debugw("queue_order_record_enqueued", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func orderRecordTaskID(checkoutSessionID string) string {
	return TaskOrderRecord + ":" + strings.TrimSpace(checkoutSessionID)
}

// RedisOpt asynq 使用的 Redis 连接参数
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
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

// ServerConfig 消费端配置：并发、队列权重、日志与失败回调
func ServerConfig(cfg *config.QueueConfig) asynq.Config {
	serverCfg := asynq.Config{
		Concurrency:     defaultConcurrency,
		Queues:          map[string]int{CriticalQueue: 6, DefaultQueue: 3},
		ShutdownTimeout: workerShutdownWindow,
		Logger:          logger.S(),
		ErrorHandler:    asynq.ErrorHandlerFunc(logTaskFailure),
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return serverCfg
}

func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("queue_task_failed",
		"type", task.Type(),
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}
