package negotiation

import "errors"

// 错误定义
var (
	// ErrIncompatibleFeatures 对端要求了本地不支持的强制特性
	ErrIncompatibleFeatures = errors.New("negotiation: incompatible features")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("negotiation: invalid config")

	// ErrNilConn 连接为 nil
	ErrNilConn = errors.New("negotiation: conn is nil")
)
