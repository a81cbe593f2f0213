package session

import (
	"context"
	"errors"
	"time"

	"github.com/trendsight-boutique/internal/logger"
)

const defaultSweepInterval = time.Minute

// Sweeper 定期清理闲置会话的后台服务
type Sweeper struct {
	name     string
	store    *Store
	idle     time.Duration
	interval time.Duration
}

// NewSweeper 创建会话清理服务
func NewSweeper(store *Store, idle, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		name:     "session_sweeper",
		store:    store,
		idle:     idle,
		interval: interval,
	}
}

// Name 服务名称
func (s *Sweeper) Name() string {
	if s == nil || s.name == "" {
		return "session_sweeper"
	}
	return s.name
}

// Start 启动清理循环，直到 ctx 结束
func (s *Sweeper) Start(ctx context.Context) error {
	if s == nil || s.store == nil {
		return errors.New("session sweeper not initialized")
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// Stop 停止服务（由 Start 的 ctx 控制退出）
func (s *Sweeper) Stop(context.Context) error {
	return nil
}

// SweepOnce 执行一次清理
func (s *Sweeper) SweepOnce() int {
	evicted := s.store.EvictIdle(s.idle)
	if evicted > 0 {
		logger.Debugw("session_sweep_evicted", "evicted", evicted, "remaining", s.store.Len())
	}
	return evicted
}
