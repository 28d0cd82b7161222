package compat

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-featurebits/config"
)

// Params 判定记录簿依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("compat",
		fx.Provide(ProvideVerdictBook),
	)
}

// ProvideVerdictBook 提供判定记录簿
func ProvideVerdictBook(p Params) (*VerdictBook, error) {
	capacity := DefaultVerdictCapacity
	if p.UnifiedCfg != nil {
		capacity = p.UnifiedCfg.Verdicts.Capacity
	}
	return NewVerdictBook(capacity)
}
