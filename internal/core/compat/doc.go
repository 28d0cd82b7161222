// Package compat 实现特性向量兼容性检查
//
// # 兼容性约定
//
// 对端向量中每个已设置的位按以下规则判定：
//
//	奇数位（建议形式）: 总是可接受，未知的建议位必须忽略
//	偶数位（强制形式）: 参考向量以任意形式提供该特性，且对端没有同时设置建议位
//
// 一个失败的强制位或一个畸形特性对即判定不兼容。
//
// # 使用示例
//
//	if !compat.Supported(theirLocal, ourLocal) {
//	    return ErrIncompatibleFeatures
//	}
//
//	// 需要诊断信息时
//	res := compat.Check(theirLocal, ourLocal)
//	log.Info("rejected", "bit", res.Bit, "reason", res.Reason)
//
// # 注意事项
//
//  1. 检查不对称：参数顺序为 (对端, 参考)
//  2. 长度不同的向量可以直接比较，越界位视为未设置
//  3. Check/Supported 是纯函数，可在任意数量的 goroutine 中并发调用
//  4. VerdictBook 只用于诊断，不参与判定
package compat
