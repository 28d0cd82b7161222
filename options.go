package featurebits

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-featurebits/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// Feature 能力表条目配置
type Feature = config.FeatureEntry

// options 内部选项结构
type options struct {
	// 统一配置
	config *config.Config

	// 能力表覆盖
	localFeatures  []Feature
	globalFeatures []Feature

	// 握手配置
	handshakeTimeout time.Duration

	// 指标注册表
	registerer prometheus.Registerer

	// 时钟（测试用）
	clock clock.Clock

	// 输出 Fx 事件日志
	fxDebug bool
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// finalize 把选项合并进统一配置
func (o *options) finalize() (*config.Config, error) {
	cfg := *o.config
	if len(o.localFeatures) > 0 {
		cfg.Features.Local = append([]Feature(nil), o.localFeatures...)
	}
	if len(o.globalFeatures) > 0 {
		cfg.Features.Global = append([]Feature(nil), o.globalFeatures...)
	}
	if o.handshakeTimeout > 0 {
		cfg.Handshake = cfg.Handshake.WithTimeout(o.handshakeTimeout)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// WithConfig 使用完整配置
//
// 之后的 WithLocalFeatures 等选项仍然生效。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("nil config")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从 JSON 或 TOML 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithLocalFeatures 覆盖连接级能力表
func WithLocalFeatures(features ...Feature) Option {
	return func(o *options) error {
		o.localFeatures = features
		return nil
	}
}

// WithGlobalFeatures 覆盖全网级能力表
func WithGlobalFeatures(features ...Feature) Option {
	return func(o *options) error {
		o.globalFeatures = features
		return nil
	}
}

// WithHandshakeTimeout 设置握手超时
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return fmt.Errorf("handshake timeout must be positive, got %s", timeout)
		}
		o.handshakeTimeout = timeout
		return nil
	}
}

// WithRegisterer 把协商指标注册到 reg
//
// 未设置时不导出指标。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithClock 使用指定时钟（测试中传入 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// WithFxDebug 输出 Fx 依赖注入事件日志
func WithFxDebug(enable bool) Option {
	return func(o *options) error {
		o.fxDebug = enable
		return nil
	}
}
