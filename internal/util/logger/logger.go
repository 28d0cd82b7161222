// Package logger 提供 featurebits 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（FEATUREBITS_LOG_LEVEL, FEATUREBITS_LOG_FORMAT）
//   - 结构化日志
//
// 使用示例:
//
//	package negotiation
//
//	import "github.com/dep2p/go-featurebits/internal/util/logger"
//
//	var log = logger.Logger("core/negotiation")
//
//	func foo() {
//	    log.Info("peer rejected", "peer", peer, "bit", bit)
//	    log.Debug("init sent", "bytes", n)
//	}
//
// 环境变量配置:
//
//	# 默认 warn，协商模块 debug
//	FEATUREBITS_LOG_LEVEL=core/negotiation=debug,warn
//
//	# 使用 JSON 格式输出
//	FEATUREBITS_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler
)

// Logger 获取指定子系统的 Logger
//
// 级别由 FEATUREBITS_LOG_LEVEL 决定。同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	handler := newHandler(subsystem, cfg.LevelForSubsystem(subsystem), cfg.Format)
	logger := slog.New(handler)

	actual, loaded := loggers.LoadOrStore(subsystem, logger)
	if !loaded {
		handlers.Store(subsystem, handler)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
//
//	logger.SetLevel("core/negotiation", slog.LevelDebug)
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).SetLevel(level)
	}
}

// SetGlobalLevel 设置所有已创建子系统的日志级别
func SetGlobalLevel(level slog.Level) {
	handlers.Range(func(_, value any) bool {
		value.(*subsystemHandler).SetLevel(level)
		return true
	})
}

// Discard 返回一个丢弃所有日志的 Logger
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 同样生效。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
