package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-featurebits/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标名前缀
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: DefaultNamespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enable,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(ProvideReporter),
)

// ProvideReporter 从参数创建 Reporter
//
// 禁用指标或未提供 Registerer 时返回空实现，不会注册到全局默认注册表。
func ProvideReporter(p Params) (Reporter, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled || p.Registerer == nil {
		return NewNop(), nil
	}
	return NewMetrics(p.Registerer, cfg.Namespace)
}
