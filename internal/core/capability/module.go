package capability

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-featurebits/config"
)

// Params 能力表依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("capability",
		fx.Provide(ProvideTables),
	)
}

// ProvideTables 从统一配置提供能力表组合
//
// 能力表在启动时构建一次，此后只读。
func ProvideTables(p Params) (Tables, error) {
	if p.UnifiedCfg == nil {
		return Defaults(), nil
	}
	return FromConfig(p.UnifiedCfg.Features)
}
