package config

import "errors"

// VerdictsConfig 对端判定记录配置
type VerdictsConfig struct {
	// Capacity 最多保留的对端判定条数（LRU 淘汰）
	Capacity int `json:"capacity" toml:"capacity"`
}

// DefaultVerdictsConfig 返回默认判定记录配置
func DefaultVerdictsConfig() VerdictsConfig {
	return VerdictsConfig{
		Capacity: 1024,
	}
}

// Validate 验证判定记录配置
func (c VerdictsConfig) Validate() error {
	if c.Capacity <= 0 {
		return errors.New("verdicts capacity must be positive")
	}
	return nil
}
