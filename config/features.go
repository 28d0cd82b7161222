package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// MaxFeatureBit 可声明的最大特性位（受 init 消息 u16 长度字段限制）
const MaxFeatureBit = 65535*8 - 1

// FeatureEntry 能力表条目配置
type FeatureEntry struct {
	// Bit 特性标识（必须为偶数，即特性对的强制位）
	Bit uint `json:"bit" toml:"bit"`

	// Name 特性名称，仅用于日志与命令行输出
	Name string `json:"name,omitempty" toml:"name"`

	// Mandatory 是否支持强制形式
	Mandatory bool `json:"mandatory" toml:"mandatory"`

	// Advisory 是否支持建议形式
	Advisory bool `json:"advisory" toml:"advisory"`
}

// FeaturesConfig 能力表配置
//
// 列表为空时使用内置能力表。
type FeaturesConfig struct {
	// Local 连接级能力表
	Local []FeatureEntry `json:"local,omitempty" toml:"local"`

	// Global 全网级能力表
	Global []FeatureEntry `json:"global,omitempty" toml:"global"`
}

// DefaultFeaturesConfig 返回默认能力表配置（使用内置能力表）
func DefaultFeaturesConfig() FeaturesConfig {
	return FeaturesConfig{}
}

// Validate 验证能力表配置
func (c FeaturesConfig) Validate() error {
	return multierr.Append(
		validateEntries("local", c.Local),
		validateEntries("global", c.Global),
	)
}

func validateEntries(namespace string, entries []FeatureEntry) error {
	var err error
	seen := make(map[uint]struct{}, len(entries))
	for i, e := range entries {
		if e.Bit%2 != 0 {
			err = multierr.Append(err, fmt.Errorf("features.%s[%d]: bit %d must be even", namespace, i, e.Bit))
		}
		if e.Bit > MaxFeatureBit {
			err = multierr.Append(err, fmt.Errorf("features.%s[%d]: bit %d exceeds %d", namespace, i, e.Bit, MaxFeatureBit))
		}
		if _, dup := seen[e.Bit]; dup {
			err = multierr.Append(err, fmt.Errorf("features.%s[%d]: duplicate bit %d", namespace, i, e.Bit))
		}
		seen[e.Bit] = struct{}{}
	}
	return err
}
