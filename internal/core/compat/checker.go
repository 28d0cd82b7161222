package compat

import (
	"fmt"

	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/internal/core/feature"
)

// Reason 不兼容原因
type Reason int

const (
	// ReasonNone 兼容
	ReasonNone Reason = iota
	// ReasonUnknownMandatory 对端设置了参考向量未提供的强制位
	ReasonUnknownMandatory
	// ReasonMalformedPair 对端同时设置了同一特性的强制位与建议位
	ReasonMalformedPair
)

// String 返回原因名称
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnknownMandatory:
		return "unknown_mandatory"
	case ReasonMalformedPair:
		return "malformed_pair"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Result 兼容性检查结果
type Result struct {
	// Compatible 是否兼容
	Compatible bool

	// Bit 第一个导致失败的位（兼容时为 0）
	Bit uint

	// Reason 失败原因
	Reason Reason
}

// String 返回结果描述
func (r Result) String() string {
	if r.Compatible {
		return "compatible"
	}
	return fmt.Sprintf("incompatible: %s at bit %d", r.Reason, r.Bit)
}

// Check 检查对端向量与参考向量的兼容性
//
// 从位 0 升序扫描对端向量的每个已设置位：
//  1. 奇数位（建议形式）总是可接受，无论参考向量是否提及该特性
//  2. 偶数位 n（强制形式）仅在参考向量以任意形式提供特性 n，
//     且对端向量没有同时设置 n+1 时可接受
//  3. 所有位都可接受时兼容；遇到第一个失败即返回
//
// 该检查不对称：参数顺序必须为 (对端, 参考)。
func Check(their, ours bitvector.Vector) Result {
	for bit := uint(0); bit < their.BitLen(); bit += 2 {
		if !their.IsSet(bit) {
			continue
		}
		if their.IsSet(feature.Advisory(bit)) {
			return Result{Bit: bit, Reason: ReasonMalformedPair}
		}
		if !feature.Offered(ours, bit) {
			return Result{Bit: bit, Reason: ReasonUnknownMandatory}
		}
	}
	return Result{Compatible: true}
}

// Supported 检查对端向量是否能与参考向量互通
//
// 等价于 Check(their, ours).Compatible。
func Supported(their, ours bitvector.Vector) bool {
	return Check(their, ours).Compatible
}
