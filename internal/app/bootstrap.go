package app

import (
	"errors"
	"fmt"
	"net"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/provider"
	"github.com/trendsight-boutique/internal/router"
	"github.com/trendsight-boutique/internal/session"
	"github.com/trendsight-boutique/internal/worker"
)

var errNilConfig = errors.New("config is nil")

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}

// BuildRunner 按运行模式组装服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if !validMode(mode) {
		return nil, fmt.Errorf("unknown run mode: %q", mode)
	}

	container := provider.NewContainer(cfg)
	var services []Service
	if mode != ModeWorker {
		services = append(services, apiServices(cfg, container)...)
	}

	switch {
	case mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled):
		svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	case mode == ModeAll:
		// 队列未启用时确认结账同步落库
		logger.Infow("app_worker_skipped", "reason", "queue disabled")
	}
	return NewRunner(services...), nil
}

// apiServices HTTP 服务与购物车会话清理，二者共享进程内的会话存储
func apiServices(cfg *config.Config, container *provider.Container) []Service {
	return []Service{
		NewHTTPService(listenAddr(cfg), router.SetupRouter(cfg, container)),
		session.NewSweeper(container.SessionStore, cfg.Session.IdleTTL(), cfg.Session.SweepInterval()),
	}
}

// Run 进程入口：组装服务后阻塞到收到信号
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errNilConfig
	}
	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
