package negotiation

import (
	"fmt"
	"time"

	"github.com/dep2p/go-featurebits/config"
	"github.com/dep2p/go-featurebits/internal/protocol/initmsg"
)

// Config 协商模块配置
type Config struct {
	// Timeout 握手超时时间
	Timeout time.Duration

	// MaxMessageSize 接收 init 帧的最大字节数
	MaxMessageSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxMessageSize: initmsg.DefaultMaxFrame,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxMessageSize < initmsg.MinFrameLen || c.MaxMessageSize > initmsg.MaxFrameLen {
		return fmt.Errorf("%w: max message size %d out of range [%d, %d]",
			ErrInvalidConfig, c.MaxMessageSize, initmsg.MinFrameLen, initmsg.MaxFrameLen)
	}
	return nil
}

// WithTimeout 设置握手超时
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// WithMaxMessageSize 设置最大帧大小
func (c Config) WithMaxMessageSize(size int) Config {
	c.MaxMessageSize = size
	return c
}

// ConfigFromUnified 从统一配置创建协商配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Timeout:        cfg.Handshake.Timeout.Duration(),
		MaxMessageSize: cfg.Handshake.MaxMessageSize,
	}
}
