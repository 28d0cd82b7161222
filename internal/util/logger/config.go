package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogFormat 日志输出格式
type LogFormat int

const (
	// FormatText 文本格式（默认）
	FormatText LogFormat = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// 环境变量名
const (
	EnvLogLevel     = "FEATUREBITS_LOG_LEVEL"
	EnvLogFormat    = "FEATUREBITS_LOG_FORMAT"
	EnvLogAddSource = "FEATUREBITS_LOG_ADD_SOURCE"
)

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format LogFormat

	// AddSource 是否添加源码位置
	AddSource bool
}

// LevelForSubsystem 获取指定子系统的日志级别
func (c *Config) LevelForSubsystem(subsystem string) slog.Level {
	if level, ok := c.SubsystemLevels[subsystem]; ok {
		return level
	}
	return c.DefaultLevel
}

// configCache 缓存配置，避免重复解析
var (
	configCache *Config
	configOnce  sync.Once
)

// ConfigFromEnv 从环境变量解析配置
//
// 环境变量:
//   - FEATUREBITS_LOG_LEVEL: 日志级别配置
//     格式: 子系统=级别,子系统=级别,默认级别
//     示例: core/negotiation=debug,warn
//   - FEATUREBITS_LOG_FORMAT: text 或 json
//   - FEATUREBITS_LOG_ADD_SOURCE: true 或 false
func ConfigFromEnv() *Config {
	configOnce.Do(func() {
		configCache = parseConfig()
	})
	return configCache
}

// parseConfig 解析环境变量配置
func parseConfig() *Config {
	cfg := &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
		Format:          FormatText,
	}

	if levelStr := os.Getenv(EnvLogLevel); levelStr != "" {
		parseLevelConfig(cfg, levelStr)
	}

	if formatStr := os.Getenv(EnvLogFormat); formatStr != "" {
		switch strings.ToLower(formatStr) {
		case "json":
			cfg.Format = FormatJSON
		default:
			cfg.Format = FormatText
		}
	}

	if addSourceStr := os.Getenv(EnvLogAddSource); addSourceStr != "" {
		cfg.AddSource = addSourceStr != "false" && addSourceStr != "0"
	}

	return cfg
}

// parseLevelConfig 解析日志级别配置字符串
// 格式: subsystem=level,subsystem=level,defaultLevel
// 示例: core/negotiation=debug,warn
func parseLevelConfig(cfg *Config, levelStr string) {
	parts := strings.Split(levelStr, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "=") {
			// 子系统级别: subsystem=level
			kv := strings.SplitN(part, "=", 2)
			if len(kv) == 2 {
				subsystem := strings.TrimSpace(kv[0])
				levelName := strings.TrimSpace(kv[1])
				if level, ok := parseLevel(levelName); ok {
					cfg.SubsystemLevels[subsystem] = level
				}
			}
		} else {
			// 默认级别
			if level, ok := parseLevel(part); ok {
				cfg.DefaultLevel = level
			}
		}
	}
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResetConfig 重置配置缓存（仅用于测试）
//
// 已创建的子系统 Logger 一并丢弃，之后的 Logger 调用重新读取环境变量。
func ResetConfig() {
	configOnce = sync.Once{}
	configCache = nil
	loggers.Range(func(k, _ any) bool {
		loggers.Delete(k)
		return true
	})
	handlers.Range(func(k, _ any) bool {
		handlers.Delete(k)
		return true
	})
}

