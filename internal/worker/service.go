package worker

import (
	"context"
	"errors"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/queue"

	"github.com/hibiken/asynq"
)

var (
	// ErrQueueDisabled 队列未启用时不能启动 worker
	ErrQueueDisabled = errors.New("queue disabled")
	errNoConsumer    = errors.New("worker consumer is nil")
)

// Service 把 asynq 消费端包装为可由 app.Runner 管理的服务
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建消费服务并注册任务处理器
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, errNoConsumer
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server: asynq.NewServer(queue.RedisOpt(cfg), queue.ServerConfig(cfg)),
		mux:    mux,
	}, nil
}

// Name 服务名
func (s *Service) Name() string { return "worker" }

// Start 启动消费端后阻塞到 ctx 结束；信号由 app.Runner 统一处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束后关闭
func (s *Service) Stop(context.Context) error {
	if s != nil && s.server != nil {
		s.server.Shutdown()
	}
	return nil
}
