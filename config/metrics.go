package config

import (
	"errors"
	"strings"
)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enable 是否注册 Prometheus 指标
	Enable bool `json:"enable" toml:"enable"`

	// Namespace 指标名前缀
	Namespace string `json:"namespace" toml:"namespace"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enable:    true,
		Namespace: "featurebits",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("metrics namespace must not be empty")
	}
	if strings.ContainsAny(c.Namespace, " -./") {
		return errors.New("metrics namespace contains invalid characters")
	}
	return nil
}
