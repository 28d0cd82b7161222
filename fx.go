package featurebits

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/metrics"
	"github.com/dep2p/go-featurebits/internal/core/negotiation"
	"github.com/dep2p/go-featurebits/pkg/lib/log"
)

var fxLogger = log.Logger("featurebits/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//
//	Capability → Compat (VerdictBook) → Metrics → Negotiation
func buildFxApp(o *options, node *Node) (*fx.App, error) {
	cfg, err := o.finalize()
	if err != nil {
		return nil, err
	}

	modules := []fx.Option{
		// 配置注入
		fx.Supply(cfg),

		capability.Module(),
		compat.Module(),
		metrics.Module,
		negotiation.Module(),
	}

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	modules = append(modules, fx.Invoke(injectNodeComponents(node)))

	zl := zap.NewNop()
	if o.fxDebug {
		if zl, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("create fx logger: %w", err)
		}
	}
	modules = append(modules, fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zl}
	}))

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		fxLogger.Error("Fx 应用构建失败", "error", err)
		return nil, err
	}
	return app, nil
}

// nodeInjectParams Node 组件注入参数
type nodeInjectParams struct {
	fx.In

	Negotiator *negotiation.Negotiator
	Tables     capability.Tables
	Book       *compat.VerdictBook
}

// injectNodeComponents 创建 Node 组件注入函数
func injectNodeComponents(node *Node) interface{} {
	return func(params nodeInjectParams) {
		node.negotiator = params.Negotiator
		node.tables = params.Tables
		node.book = params.Book
	}
}
