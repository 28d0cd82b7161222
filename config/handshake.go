package config

import (
	"errors"
	"time"
)

// 握手消息大小边界
const (
	// minMessageSize init 消息的最小长度：类型 + 两个长度字段
	minMessageSize = 6

	// maxMessageSize 两个满长度向量加头部
	maxMessageSize = 6 + 2*65535
)

// HandshakeConfig 握手配置
//
// 控制 init 消息的交换：
//   - 超时：整个交换（写出 + 读入）的上限
//   - 消息大小：拒绝超大帧，防止对端耗尽内存
type HandshakeConfig struct {
	// Timeout 握手超时
	Timeout Duration `json:"timeout" toml:"timeout"`

	// MaxMessageSize 单个 init 消息帧的最大字节数
	MaxMessageSize int `json:"max_message_size" toml:"max_message_size"`
}

// DefaultHandshakeConfig 返回默认握手配置
func DefaultHandshakeConfig() HandshakeConfig {
	return HandshakeConfig{
		Timeout:        Duration(30 * time.Second), // 握手超时：30 秒
		MaxMessageSize: 64 * 1024,                  // 最大帧：64KB，足够容纳常见特性向量
	}
}

// Validate 验证握手配置
func (c HandshakeConfig) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("handshake timeout must be positive")
	}
	if c.MaxMessageSize < minMessageSize {
		return errors.New("handshake max message size too small")
	}
	if c.MaxMessageSize > maxMessageSize {
		return errors.New("handshake max message size exceeds wire limit")
	}
	return nil
}

// WithTimeout 设置握手超时
func (c HandshakeConfig) WithTimeout(timeout time.Duration) HandshakeConfig {
	c.Timeout = Duration(timeout)
	return c
}

// WithMaxMessageSize 设置最大消息大小
func (c HandshakeConfig) WithMaxMessageSize(size int) HandshakeConfig {
	c.MaxMessageSize = size
	return c
}
