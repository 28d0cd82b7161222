package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，提供更明确的语义。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 超时时间非正 -> 使用默认值
//   - 判定容量非正 -> 使用默认值
//   - 启用指标但命名空间为空 -> 使用默认值
//
// 能力表错误无法自动修复，直接返回错误。
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Handshake.Timeout <= 0 {
		c.Handshake.Timeout = DefaultHandshakeConfig().Timeout
	}
	if c.Handshake.MaxMessageSize <= 0 {
		c.Handshake.MaxMessageSize = DefaultHandshakeConfig().MaxMessageSize
	}
	if c.Verdicts.Capacity <= 0 {
		c.Verdicts.Capacity = DefaultVerdictsConfig().Capacity
	}
	if c.Metrics.Enable && c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsConfig().Namespace
	}

	// 验证修复后的配置
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}

	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
// 生产代码应使用 Validate() 并处理错误。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
