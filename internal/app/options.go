package app

import (
	"os"
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：all 同时运行 HTTP、会话清理与队列消费；api 不消费队列；worker 只消费队列
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 进程级启动参数
type Options struct {
	Config          *config.Config
	Mode            string
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Logger          *zap.SugaredLogger
}

func validMode(mode string) bool {
	return mode == ModeAll || mode == ModeAPI || mode == ModeWorker
}

func normalizeOptions(opts Options) Options {
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	return opts
}
