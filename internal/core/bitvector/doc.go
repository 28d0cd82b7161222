// Package bitvector 实现可增长的大端序特性位向量
//
// # 寻址约定
//
// 线格式沿用历史约定：字节之间与字节之内均为大端序，
// 但对外按「从尾部计数」的位索引寻址：
//
//	字节:   [ b0        ][ b1        ]
//	位索引:   15 ... 8     7  ...  0
//
// 位索引 i 对应字节 (len-1-i/8) 的第 i%8 位。
// 该换算只存在于本包，其余组件只使用抽象位索引。
//
// # 使用示例
//
//	var v bitvector.Vector
//	v.Set(9)            // 自动扩容为 2 字节: 0x0200
//	v.IsSet(9)          // true
//	v.IsSet(100)        // false（越界视为未设置）
//
// # 注意事项
//
//  1. Set 永不失败，越界时在高位端前置零字节
//  2. 所有读取操作越界时返回 false，不会 panic
//  3. Vector 是值语义的字节切片，需要独立副本时使用 Clone
package bitvector
