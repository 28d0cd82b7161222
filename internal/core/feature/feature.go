// Package feature 实现特性位对语义
//
// 位 2N 与 2N+1 共同描述逻辑特性 N：
//   - 2N（偶数位）: 强制 (mandatory) 形式，对端不识别时必须拒绝互通
//   - 2N+1（奇数位）: 建议 (advisory) 形式，对端不识别时可以忽略
//
// 同一特性的两个位同时设置属于畸形声明。
//
// 本包只判断位的形式，不解释任何特性的具体含义。
package feature

import "github.com/dep2p/go-featurebits/internal/core/bitvector"

// IsMandatory 检查位是否为强制形式（偶数位）
func IsMandatory(bit uint) bool {
	return bit%2 == 0
}

// IsAdvisory 检查位是否为建议形式（奇数位）
func IsAdvisory(bit uint) bool {
	return bit%2 == 1
}

// Mandatory 返回位所在特性对的强制位
func Mandatory(bit uint) uint {
	return bit &^ 1
}

// Advisory 返回位所在特性对的建议位
func Advisory(bit uint) uint {
	return bit | 1
}

// Pair 返回位所属的逻辑特性编号 N
func Pair(bit uint) uint {
	return bit / 2
}

// Offered 检查向量是否以任意形式提供特性 n
//
// n 应为偶数特性标识；传入奇数时按其所在特性对处理。
// 不会修改或扩容输入，超出长度的查询返回 false。
func Offered(v bitvector.Vector, n uint) bool {
	return v.IsSet(Mandatory(n)) || v.IsSet(Advisory(n))
}

// Malformed 检查特性 n 的强制位与建议位是否同时设置
func Malformed(v bitvector.Vector, n uint) bool {
	return v.IsSet(Mandatory(n)) && v.IsSet(Advisory(n))
}

// MalformedPairs 按升序返回所有畸形特性对的偶数标识
func MalformedPairs(v bitvector.Vector) []uint {
	var out []uint
	for n := uint(0); n < v.BitLen(); n += 2 {
		if Malformed(v, n) {
			out = append(out, n)
		}
	}
	return out
}

// OfferedFeatures 按升序返回向量中以任意形式提供的特性（偶数标识）
func OfferedFeatures(v bitvector.Vector) []uint {
	var out []uint
	for n := uint(0); n < v.BitLen(); n += 2 {
		if Offered(v, n) {
			out = append(out, n)
		}
	}
	return out
}
