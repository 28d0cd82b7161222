package negotiation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-featurebits/config"
	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/metrics"
)

// TestModule_Load 测试模块加载
func TestModule_Load(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Handshake = cfg.Handshake.WithTimeout(5 * time.Second)

	var n *Negotiator
	var c Config
	app := fxtest.New(t,
		fx.Supply(cfg),
		capability.Module(),
		compat.Module(),
		metrics.Module,
		Module(),
		fx.Populate(&n, &c),
	)
	defer app.RequireStart().RequireStop()

	assert.NotNil(t, n)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, capability.RenderLocal(), n.LocalFeatures())
}
