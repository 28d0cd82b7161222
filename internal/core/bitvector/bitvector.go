package bitvector

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Vector 特性位向量
//
// 底层按大端序存储：字节 0 为最高位字节，字节内 bit 7 为最高位。
// 对外以位索引寻址，索引 0 为最后一个字节的最低位，
// 索引增大方向朝向整个向量的最高位端（即从尾部计数）。
//
// L 字节的向量恰好可寻址 0 .. 8L-1，超出长度的索引视为未设置。
type Vector []byte

// New 创建设置了指定位的向量
//
// 向量长度恰好覆盖最高位，不留多余字节。
func New(bits ...uint) Vector {
	var v Vector
	for _, bit := range bits {
		v.Set(bit)
	}
	return v
}

// FromBytes 从字节序列创建向量（复制输入）
func FromBytes(b []byte) Vector {
	if b == nil {
		return nil
	}
	v := make(Vector, len(b))
	copy(v, b)
	return v
}

// Parse 解析十六进制字符串形式的向量
func Parse(s string) (Vector, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bitvector: invalid hex %q: %w", s, err)
	}
	return Vector(b), nil
}

// ============================================================================
//                              位操作
// ============================================================================

// Set 设置指定位
//
// 索引超出当前容量时在高位端前置零字节扩容，永不失败。
// 扩容时先构造新切片再整体替换，调用方不会观察到半扩容状态。
func (v *Vector) Set(bit uint) {
	byteIdx := bit / 8
	n := uint(len(*v))
	if byteIdx >= n {
		newLen := byteIdx + 1
		grown := make(Vector, newLen)
		copy(grown[newLen-n:], *v)
		*v = grown
		n = newLen
	}
	(*v)[n-1-byteIdx] |= 1 << (bit % 8)
}

// TestBit 读取原始位
//
// byteOffset 从尾部计数（0 为最后一个字节），bitOffset 为字节内位 (0-7)，
// 因此 TestBit(i/8, i%8) 与 IsSet(i) 等价。
// 越界访问统一定义为未设置。
func (v Vector) TestBit(byteOffset, bitOffset uint) bool {
	n := uint(len(v))
	if byteOffset >= n || bitOffset > 7 {
		return false
	}
	return v[n-1-byteOffset]&(1<<bitOffset) != 0
}

// IsSet 检查指定位是否设置，超出长度返回 false
func (v Vector) IsSet(bit uint) bool {
	return v.TestBit(bit/8, bit%8)
}

// BitLen 返回可寻址的位数 (8 * 字节数)
func (v Vector) BitLen() uint {
	return uint(len(v)) * 8
}

// SetBits 按升序返回所有已设置的位索引
func (v Vector) SetBits() []uint {
	var out []uint
	for bit := uint(0); bit < v.BitLen(); bit++ {
		if v.IsSet(bit) {
			out = append(out, bit)
		}
	}
	return out
}

// IsZero 检查是否没有任何位被设置
func (v Vector) IsZero() bool {
	for _, b := range v {
		if b != 0 {
			return false
		}
	}
	return true
}

// ============================================================================
//                              辅助方法
// ============================================================================

// Clone 返回独立副本
func (v Vector) Clone() Vector {
	return FromBytes(v)
}

// Bytes 返回底层字节
func (v Vector) Bytes() []byte {
	return []byte(v)
}

// Equal 比较两个向量的位内容
//
// 高位端的零字节不影响结果。
func (v Vector) Equal(other Vector) bool {
	return bytes.Equal(bytes.TrimLeft(v, "\x00"), bytes.TrimLeft(other, "\x00"))
}

// String 返回十六进制表示
func (v Vector) String() string {
	return hex.EncodeToString(v)
}
