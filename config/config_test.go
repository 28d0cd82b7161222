package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	// 验证默认配置有效
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Features.Local)
	assert.Empty(t, cfg.Features.Global)

	t.Log("✅ NewConfig 测试通过")
}

// TestFeaturesConfig 测试能力表配置
func TestFeaturesConfig(t *testing.T) {
	t.Run("Validate_Valid", func(t *testing.T) {
		cfg := FeaturesConfig{
			Local:  []FeatureEntry{{Bit: 0, Advisory: true}, {Bit: 6, Mandatory: true}},
			Global: []FeatureEntry{{Bit: 8, Advisory: true}},
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate_OddBit", func(t *testing.T) {
		cfg := FeaturesConfig{Local: []FeatureEntry{{Bit: 3, Advisory: true}}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be even")
	})

	t.Run("Validate_ReportsAllProblems", func(t *testing.T) {
		cfg := FeaturesConfig{
			Local:  []FeatureEntry{{Bit: 1}, {Bit: 2}, {Bit: 2}},
			Global: []FeatureEntry{{Bit: MaxFeatureBit + 1}},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 3)
	})

	t.Log("✅ FeaturesConfig 测试通过")
}

// TestHandshakeConfig 测试握手配置
func TestHandshakeConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultHandshakeConfig()
		assert.Equal(t, 30*time.Second, cfg.Timeout.Duration())
		assert.Equal(t, 64*1024, cfg.MaxMessageSize)
	})

	t.Run("Validate_ZeroTimeout", func(t *testing.T) {
		cfg := DefaultHandshakeConfig().WithTimeout(0)
		assert.Error(t, cfg.Validate())
	})

	t.Run("Validate_MessageSizeBounds", func(t *testing.T) {
		assert.Error(t, DefaultHandshakeConfig().WithMaxMessageSize(2).Validate())
		assert.Error(t, DefaultHandshakeConfig().WithMaxMessageSize(1<<20).Validate())
		assert.NoError(t, DefaultHandshakeConfig().WithMaxMessageSize(6).Validate())
	})
}

// TestVerdictsAndMetricsConfig 测试判定记录与指标配置
func TestVerdictsAndMetricsConfig(t *testing.T) {
	assert.Error(t, VerdictsConfig{Capacity: 0}.Validate())
	assert.NoError(t, DefaultVerdictsConfig().Validate())

	assert.NoError(t, MetricsConfig{Enable: false}.Validate())
	assert.Error(t, MetricsConfig{Enable: true}.Validate())
	assert.Error(t, MetricsConfig{Enable: true, Namespace: "feature-bits"}.Validate())
}

// TestConfig_ValidateCombinesErrors 测试整体验证合并所有子配置错误
func TestConfig_ValidateCombinesErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Handshake.Timeout = 0
	cfg.Verdicts.Capacity = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"features": {"local": [{"bit": 0, "name": "option_data_loss_protect", "advisory": true}]},
		"handshake": {"timeout": "10s"}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Handshake.Timeout.Duration())
	assert.Equal(t, 64*1024, cfg.Handshake.MaxMessageSize)
	require.Len(t, cfg.Features.Local, 1)
	assert.Equal(t, "option_data_loss_protect", cfg.Features.Local[0].Name)
	assert.True(t, cfg.Features.Local[0].Advisory)

	out, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"timeout": "10s"`)

	_, err = FromJSON([]byte(`{"handshake": {"timeout": "soon"}}`))
	assert.Error(t, err)
}

// TestFromTOML 测试 TOML 加载
func TestFromTOML(t *testing.T) {
	data := []byte(`
[handshake]
timeout = "5s"
max_message_size = 1024

[verdicts]
capacity = 16

[[features.global]]
bit = 8
name = "var_onion_optin"
advisory = true
`)

	cfg, err := FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Handshake.Timeout.Duration())
	assert.Equal(t, 1024, cfg.Handshake.MaxMessageSize)
	assert.Equal(t, 16, cfg.Verdicts.Capacity)
	require.Len(t, cfg.Features.Global, 1)
	assert.Equal(t, uint(8), cfg.Features.Global[0].Bit)
	assert.True(t, cfg.Metrics.Enable)

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := FromTOML([]byte("[handshake]\ntimeuot = \"5s\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeuot")
	})
}

// TestLoadFile 测试按扩展名加载并验证
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "featurebits.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[verdicts]\ncapacity = 8\n"), 0o600))
	cfg, err := LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Verdicts.Capacity)

	jsonPath := filepath.Join(dir, "featurebits.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"verdicts": {"capacity": 0}}`), 0o600))
	_, err = LoadFile(jsonPath)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// TestValidateAndFix 测试自动修复
func TestValidateAndFix(t *testing.T) {
	cfg := NewConfig()
	cfg.Handshake.Timeout = 0
	cfg.Verdicts.Capacity = 0
	cfg.Metrics.Namespace = ""

	fixed, err := ValidateAndFix(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultHandshakeConfig().Timeout, fixed.Handshake.Timeout)
	assert.Equal(t, 1024, fixed.Verdicts.Capacity)
	assert.Equal(t, "featurebits", fixed.Metrics.Namespace)

	cfg = NewConfig()
	cfg.Features.Local = []FeatureEntry{{Bit: 1}}
	_, err = ValidateAndFix(cfg)
	assert.Error(t, err)

	assert.Error(t, ValidateAll(nil))
}
