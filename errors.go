package featurebits

import (
	"errors"

	"github.com/dep2p/go-featurebits/internal/core/negotiation"
	"github.com/dep2p/go-featurebits/internal/protocol/initmsg"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 节点生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNodeClosed 节点已关闭
	ErrNodeClosed = errors.New("featurebits: node closed")

	// ────────────────────────────────────────────────────────────────────────
	// 协商错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrIncompatibleFeatures 对端要求了本地不支持的强制特性
	ErrIncompatibleFeatures = negotiation.ErrIncompatibleFeatures

	// ErrFrameTooLarge init 消息帧超过上限
	ErrFrameTooLarge = initmsg.ErrFrameTooLarge

	// ErrMalformedInit init 消息格式错误
	ErrMalformedInit = initmsg.ErrTruncated

	// ErrUnexpectedMessage 收到的不是 init 消息
	ErrUnexpectedMessage = initmsg.ErrUnexpectedType
)
