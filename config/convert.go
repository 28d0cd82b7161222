package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "features": {"local": [{"bit": 0, "advisory": true}]},
//	  "handshake": {"timeout": "10s"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromTOML 从 TOML 数据创建配置
//
// 示例 TOML:
//
//	[handshake]
//	timeout = "10s"
//
//	[[features.local]]
//	bit = 0
//	name = "option_data_loss_protect"
//	advisory = true
func FromTOML(data []byte) (*Config, error) {
	cfg := NewConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode toml config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown toml config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadFile 从文件加载配置并验证
//
// 按扩展名选择格式：.toml 使用 TOML，其余按 JSON 解析。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = FromTOML(data)
	default:
		cfg, err = FromJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
