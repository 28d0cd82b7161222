// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 或 TOML 加载配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Handshake.Timeout = config.Duration(10 * time.Second)
//
//	// 从文件加载（按扩展名选择 JSON 或 TOML）
//	cfg, err := config.LoadFile("featurebits.toml")
package config

import "go.uber.org/multierr"

// Config 是 go-featurebits 的完整配置结构
//
// 配置按照功能模块组织：
//   - Features: 本地能力表（连接级 / 全网级）
//   - Handshake: init 消息交换
//   - Verdicts: 对端判定记录
//   - Metrics: Prometheus 指标
type Config struct {
	// Features 能力表配置
	Features FeaturesConfig `json:"features" toml:"features"`

	// Handshake 握手配置
	Handshake HandshakeConfig `json:"handshake" toml:"handshake"`

	// Verdicts 判定记录配置
	Verdicts VerdictsConfig `json:"verdicts" toml:"verdicts"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，能力表为空时使用内置能力表。
func NewConfig() *Config {
	return &Config{
		Features:  DefaultFeaturesConfig(),
		Handshake: DefaultHandshakeConfig(),
		Verdicts:  DefaultVerdictsConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置，返回合并后的全部错误。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Features.Validate(),
		c.Handshake.Validate(),
		c.Verdicts.Validate(),
		c.Metrics.Validate(),
	)
}
