package featurebits

import (
	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/feature"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Vector 特性向量
type Vector = bitvector.Vector

// CheckResult 兼容性检查结果
type CheckResult = compat.Result

// Reason 不兼容原因
type Reason = compat.Reason

// 不兼容原因
const (
	ReasonNone             = compat.ReasonNone
	ReasonUnknownMandatory = compat.ReasonUnknownMandatory
	ReasonMalformedPair    = compat.ReasonMalformedPair
)

// 内置特性标识
const (
	FeatureDataLossProtect       = capability.FeatureDataLossProtect
	FeatureInitialRoutingSync    = capability.FeatureInitialRoutingSync
	FeatureUpfrontShutdownScript = capability.FeatureUpfrontShutdownScript
	FeatureGossipQueries         = capability.FeatureGossipQueries
	FeatureVarOnionOptin         = capability.FeatureVarOnionOptin
)

// ════════════════════════════════════════════════════════════════════════════
//                              向量操作
// ════════════════════════════════════════════════════════════════════════════

// SetBit 设置向量的第 bit 位，必要时扩容
func SetBit(v *Vector, bit uint) {
	v.Set(bit)
}

// TestBit 读取指定字节偏移（从末尾起）与字节内位偏移的位
//
// 越界读取返回 false。
func TestBit(v Vector, byteOffset, bitOffset uint) bool {
	return v.TestBit(byteOffset, bitOffset)
}

// IsSet 读取第 bit 位
func IsSet(v Vector, bit uint) bool {
	return v.IsSet(bit)
}

// ════════════════════════════════════════════════════════════════════════════
//                              特性查询
// ════════════════════════════════════════════════════════════════════════════

// FeatureOffered 向量是否以任意形式提供特性 n
func FeatureOffered(v Vector, n uint) bool {
	return feature.Offered(v, n)
}

// FeatureSupported 内置能力表是否支持指定位
//
// global 为 true 时查询全网级能力表，否则查询连接级能力表。
func FeatureSupported(global bool, bit uint) bool {
	if global {
		return capability.DefaultGlobal().Supported(bit)
	}
	return capability.DefaultLocal().Supported(bit)
}

// FeaturesSupported 对端向量 their 能否与参考向量 ours 互通
func FeaturesSupported(their, ours Vector) bool {
	return compat.Supported(their, ours)
}

// CheckFeatures 与 FeaturesSupported 相同，但返回第一个失败位与原因
func CheckFeatures(their, ours Vector) CheckResult {
	return compat.Check(their, ours)
}

// RenderLocalFeatures 渲染内置连接级广告向量
func RenderLocalFeatures() Vector {
	return capability.RenderLocal()
}

// RenderGlobalFeatures 渲染内置全网级广告向量
func RenderGlobalFeatures() Vector {
	return capability.RenderGlobal()
}
