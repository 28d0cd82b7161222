package initmsg

import "errors"

// 错误定义
var (
	// ErrFrameTooLarge 帧长度超过上限
	ErrFrameTooLarge = errors.New("initmsg: frame too large")

	// ErrTruncated 帧内容不足以容纳声明的字段
	ErrTruncated = errors.New("initmsg: truncated message")

	// ErrUnexpectedType 消息类型不是 init
	ErrUnexpectedType = errors.New("initmsg: unexpected message type")

	// ErrVectorTooLong 特性向量超过 u16 长度上限
	ErrVectorTooLong = errors.New("initmsg: feature vector too long")
)
