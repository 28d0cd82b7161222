package capability

import "errors"

// 能力表错误定义
var (
	// ErrOddFeature 特性标识不是偶数
	ErrOddFeature = errors.New("capability: feature identifier must be even")

	// ErrDuplicateFeature 特性重复声明
	ErrDuplicateFeature = errors.New("capability: duplicate feature")

	// ErrFeatureTooLarge 特性标识超出线格式上限
	ErrFeatureTooLarge = errors.New("capability: feature identifier too large")
)
