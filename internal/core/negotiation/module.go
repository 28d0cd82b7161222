package negotiation

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-featurebits/config"
	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/metrics"
)

// ConfigParams 配置依赖参数
type ConfigParams struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Params Negotiation 依赖参数
type Params struct {
	fx.In

	Config   Config
	Tables   capability.Tables
	Book     *compat.VerdictBook
	Reporter metrics.Reporter
	Clock    clock.Clock `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("negotiation",
		fx.Provide(
			ProvideConfig,
			ProvideNegotiator,
		),
	)
}

// ProvideConfig 从统一配置提供协商配置
func ProvideConfig(p ConfigParams) Config {
	return ConfigFromUnified(p.UnifiedCfg)
}

// ProvideNegotiator 提供协商器
func ProvideNegotiator(p Params) (*Negotiator, error) {
	return NewNegotiator(p.Config, p.Tables, p.Book, p.Reporter, p.Clock)
}
